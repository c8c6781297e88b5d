package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int

	deleteErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	clone := *u
	r.users[u.ID] = &clone
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetProfilePhoto(_ context.Context, id string, photo domain.Image) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfilePhoto = photo
	return nil
}

func (r *stubUserRepo) SetVerified(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Verified = true
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- posts ---

type stubPostRepo struct {
	posts map[string]*domain.Post
	seq   int

	deleteErr        error
	deleteByOwnerErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) add(p *domain.Post) *domain.Post {
	r.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("post-%d", r.seq)
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	clone := *p
	r.posts[p.ID] = &clone
	return p
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	return r.add(post), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]domain.Post, int64, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	total := int64(len(out))
	if filter.Page > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start >= len(out) {
			out = nil
		} else {
			end := start + filter.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[start:end]
		}
	}
	return out, total, nil
}

func (r *stubPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, upd ports.PostUpdate) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) SetImage(_ context.Context, id string, image domain.Image) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Image = image
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) AddLike(_ context.Context, id, userID string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if !p.LikedBy(userID) {
		p.Likes = append(p.Likes, userID)
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) RemoveLike(_ context.Context, id, userID string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	kept := p.Likes[:0]
	for _, uid := range p.Likes {
		if uid != userID {
			kept = append(kept, uid)
		}
	}
	p.Likes = kept
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	if r.deleteByOwnerErr != nil {
		return r.deleteByOwnerErr
	}
	for id, p := range r.posts {
		if p.OwnerID == ownerID {
			delete(r.posts, id)
		}
	}
	return nil
}

// --- comments ---

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	seq      int

	deleteByPostErr  error
	deleteByOwnerErr error
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) add(c *domain.Comment) *domain.Comment {
	r.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	clone := *c
	r.comments[c.ID] = &clone
	return c
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	return r.add(comment), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) List(_ context.Context) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCommentRepo) FindByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) UpdateText(_ context.Context, id, text string) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Text = text
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) DeleteByPost(_ context.Context, postID string) error {
	if r.deleteByPostErr != nil {
		return r.deleteByPostErr
	}
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *stubCommentRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	if r.deleteByOwnerErr != nil {
		return r.deleteByOwnerErr
	}
	for id, c := range r.comments {
		if c.OwnerID == ownerID {
			delete(r.comments, id)
		}
	}
	return nil
}

// --- categories ---

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	seq        int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.seq++
	if category.ID == "" {
		category.ID = fmt.Sprintf("category-%d", r.seq)
	}
	clone := *category
	r.categories[category.ID] = &clone
	return category, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// --- blob storage ---

type stubBlobs struct {
	seq     int
	removed []string

	uploadErr error
	removeErr error
}

func newStubBlobs() *stubBlobs { return &stubBlobs{} }

func (b *stubBlobs) Upload(_ context.Context, _ ports.ImageUpload) (domain.Image, error) {
	if b.uploadErr != nil {
		return domain.Image{}, b.uploadErr
	}
	b.seq++
	key := fmt.Sprintf("images/blob-%d", b.seq)
	return domain.Image{URL: "https://cdn.test/" + key, PublicID: key}, nil
}

func (b *stubBlobs) Remove(_ context.Context, publicID string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	b.removed = append(b.removed, publicID)
	return nil
}

func (b *stubBlobs) RemoveMany(_ context.Context, publicIDs []string) error {
	if b.removeErr != nil {
		return b.removeErr
	}
	b.removed = append(b.removed, publicIDs...)
	return nil
}

// --- verification store ---

type stubVerification struct {
	secrets map[string]string
	seq     int

	findOrCreateErr error
}

func newStubVerification() *stubVerification {
	return &stubVerification{secrets: make(map[string]string)}
}

func (v *stubVerification) FindOrCreate(_ context.Context, userID string) (string, bool, error) {
	if v.findOrCreateErr != nil {
		return "", false, v.findOrCreateErr
	}
	if secret, ok := v.secrets[userID]; ok {
		return secret, false, nil
	}
	v.seq++
	secret := fmt.Sprintf("secret-%d", v.seq)
	v.secrets[userID] = secret
	return secret, true, nil
}

func (v *stubVerification) Consume(_ context.Context, userID, secret string) error {
	stored, ok := v.secrets[userID]
	if !ok || stored != secret {
		return domain.ErrVerificationNotFound
	}
	delete(v.secrets, userID)
	return nil
}

// --- notifier ---

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubNotifier struct {
	sent    []sentMail
	sendErr error
}

func newStubNotifier() *stubNotifier { return &stubNotifier{} }

func (n *stubNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
