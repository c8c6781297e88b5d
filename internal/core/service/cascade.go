package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/core/domain"
	"github.com/blogora/blog-api/internal/core/ports"
)

// Cascade step names, reported inside PartialFailureError on abort.
const (
	StepLocatePost     = "locate_post"
	StepRemoveImage    = "remove_image"
	StepDeleteComments = "delete_comments"
	StepDeletePost     = "delete_post"

	StepLocateUser         = "locate_user"
	StepRemovePostImages   = "remove_post_images"
	StepDeletePosts        = "delete_posts"
	StepDeleteUserComments = "delete_user_comments"
	StepDeleteUser         = "delete_user"
)

// Coordinator runs the multi-step delete cascades. Steps execute in a fixed
// order, dependents before parents, so a crash mid-sequence leaves at worst a
// parent with no remaining children. There is no rollback: a failed step
// aborts the rest and surfaces a PartialFailureError listing what completed.
type Coordinator struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	blobs    ports.BlobStorage
	log      zerolog.Logger
}

// NewCoordinator wires a Coordinator over the four collaborating stores.
func NewCoordinator(
	users ports.UserRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	blobs ports.BlobStorage,
	log zerolog.Logger,
) *Coordinator {
	return &Coordinator{users: users, posts: posts, comments: comments, blobs: blobs, log: log}
}

// DeletePost removes a post, its image, and every comment attached to it.
func (c *Coordinator) DeletePost(ctx context.Context, id string) error {
	post, err := c.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	completed := []string{StepLocatePost}

	if post.Image.PublicID != "" {
		if err := c.blobs.Remove(ctx, post.Image.PublicID); err != nil {
			return c.abort("delete_post", StepRemoveImage, completed, err)
		}
	}
	completed = append(completed, StepRemoveImage)

	if err := c.comments.DeleteByPost(ctx, id); err != nil {
		return c.abort("delete_post", StepDeleteComments, completed, err)
	}
	completed = append(completed, StepDeleteComments)

	if err := c.posts.Delete(ctx, id); err != nil {
		return c.abort("delete_post", StepDeletePost, completed, err)
	}

	c.log.Info().Str("post_id", id).Str("owner_id", post.OwnerID).Msg("post cascade completed")
	return nil
}

// DeleteUser removes an account together with its posts, its post images, and
// the comments it authored.
//
// Known gap, kept on purpose: comments written by OTHER users on this user's
// posts are not cleaned up here. They keep pointing at deleted post ids.
// Comments are never listed independently of a post, so the dangling records
// are unreachable, but they do accumulate.
func (c *Coordinator) DeleteUser(ctx context.Context, id string) error {
	user, err := c.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	completed := []string{StepLocateUser}

	posts, err := c.posts.FindByOwner(ctx, id)
	if err != nil {
		return c.abort("delete_user", StepRemovePostImages, completed, err)
	}
	publicIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Image.PublicID != "" {
			publicIDs = append(publicIDs, p.Image.PublicID)
		}
	}
	if len(publicIDs) > 0 {
		if err := c.blobs.RemoveMany(ctx, publicIDs); err != nil {
			return c.abort("delete_user", StepRemovePostImages, completed, err)
		}
	}
	completed = append(completed, StepRemovePostImages)

	if err := c.posts.DeleteByOwner(ctx, id); err != nil {
		return c.abort("delete_user", StepDeletePosts, completed, err)
	}
	completed = append(completed, StepDeletePosts)

	if err := c.comments.DeleteByOwner(ctx, id); err != nil {
		return c.abort("delete_user", StepDeleteUserComments, completed, err)
	}
	completed = append(completed, StepDeleteUserComments)

	if err := c.users.Delete(ctx, id); err != nil {
		return c.abort("delete_user", StepDeleteUser, completed, err)
	}

	c.log.Info().
		Str("user_id", id).
		Str("email", user.Email).
		Int("posts_removed", len(posts)).
		Msg("user cascade completed")
	return nil
}

func (c *Coordinator) abort(op, failedStep string, completed []string, err error) error {
	pf := &domain.PartialFailureError{Op: op, Failed: failedStep, Completed: completed, Err: err}
	c.log.Error().
		Err(err).
		Str("op", op).
		Str("failed_step", failedStep).
		Strs("completed_steps", completed).
		Msg("cascade aborted")
	return pf
}
