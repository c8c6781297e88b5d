package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blogora/blog-api/internal/core/domain"
)

func TestCoordinator_DeletePost(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	blobs := newStubBlobs()

	posts.add(&domain.Post{ID: "p1", OwnerID: "u1", Image: domain.Image{PublicID: "images/p1"}})
	comments.add(&domain.Comment{ID: "c1", PostID: "p1", OwnerID: "u2"})
	comments.add(&domain.Comment{ID: "c2", PostID: "p1", OwnerID: "u3"})
	comments.add(&domain.Comment{ID: "c3", PostID: "other", OwnerID: "u2"})

	coord := NewCoordinator(users, posts, comments, blobs, nopLogger())
	if err := coord.DeletePost(context.Background(), "p1"); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}

	if _, ok := posts.posts["p1"]; ok {
		t.Fatal("post should be deleted")
	}
	if _, ok := comments.comments["c1"]; ok {
		t.Fatal("comments on the post should be deleted")
	}
	if _, ok := comments.comments["c3"]; !ok {
		t.Fatal("comments on other posts must survive")
	}
	if len(blobs.removed) != 1 || blobs.removed[0] != "images/p1" {
		t.Fatalf("removed blobs = %v, want [images/p1]", blobs.removed)
	}
}

func TestCoordinator_DeletePost_MissingPost(t *testing.T) {
	coord := NewCoordinator(newStubUserRepo(), newStubPostRepo(), newStubCommentRepo(), newStubBlobs(), nopLogger())
	if err := coord.DeletePost(context.Background(), "nope"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCoordinator_DeletePost_PartialFailure(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	blobs := newStubBlobs()

	posts.add(&domain.Post{ID: "p1", OwnerID: "u1", Image: domain.Image{PublicID: "images/p1"}})
	comments.deleteByPostErr = errors.New("collection offline")

	coord := NewCoordinator(users, posts, comments, blobs, nopLogger())
	err := coord.DeletePost(context.Background(), "p1")

	var pf *domain.PartialFailureError
	if !errors.As(err, &pf) {
		t.Fatalf("expected PartialFailureError, got %v", err)
	}
	if pf.Op != "delete_post" {
		t.Fatalf("Op = %q, want delete_post", pf.Op)
	}
	if pf.Failed != StepDeleteComments {
		t.Fatalf("Failed = %q, want %q", pf.Failed, StepDeleteComments)
	}
	want := []string{StepLocatePost, StepRemoveImage}
	if len(pf.Completed) != len(want) {
		t.Fatalf("Completed = %v, want %v", pf.Completed, want)
	}
	for i := range want {
		if pf.Completed[i] != want[i] {
			t.Fatalf("Completed = %v, want %v", pf.Completed, want)
		}
	}

	// The image really is gone; nothing rolls back.
	if len(blobs.removed) != 1 {
		t.Fatalf("removed blobs = %v, want exactly the post image", blobs.removed)
	}
	if _, ok := posts.posts["p1"]; !ok {
		t.Fatal("post must survive an aborted cascade")
	}
}

func TestCoordinator_DeleteUser(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	blobs := newStubBlobs()

	users.add(&domain.User{ID: "u1", Email: "u1@test.dev"})
	posts.add(&domain.Post{ID: "p1", OwnerID: "u1", Image: domain.Image{PublicID: "images/p1"}})
	posts.add(&domain.Post{ID: "p2", OwnerID: "u1"}) // no image
	posts.add(&domain.Post{ID: "p3", OwnerID: "u9"})
	comments.add(&domain.Comment{ID: "c1", PostID: "p3", OwnerID: "u1"})
	comments.add(&domain.Comment{ID: "c2", PostID: "p1", OwnerID: "u9"})

	coord := NewCoordinator(users, posts, comments, blobs, nopLogger())
	if err := coord.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	if _, ok := users.users["u1"]; ok {
		t.Fatal("user should be deleted")
	}
	if _, ok := posts.posts["p1"]; ok {
		t.Fatal("user's posts should be deleted")
	}
	if _, ok := posts.posts["p3"]; !ok {
		t.Fatal("other users' posts must survive")
	}
	if _, ok := comments.comments["c1"]; ok {
		t.Fatal("user's own comments should be deleted")
	}
	if len(blobs.removed) != 1 || blobs.removed[0] != "images/p1" {
		t.Fatalf("removed blobs = %v, want [images/p1]", blobs.removed)
	}
}

// Comments by other users on a deleted user's posts are left behind. They
// point at post ids that no longer exist and are unreachable through the API,
// but the records stay.
func TestCoordinator_DeleteUser_DanglingCommentsRemain(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	blobs := newStubBlobs()

	users.add(&domain.User{ID: "u1", Email: "u1@test.dev"})
	posts.add(&domain.Post{ID: "p1", OwnerID: "u1"})
	comments.add(&domain.Comment{ID: "c1", PostID: "p1", OwnerID: "u9"})

	coord := NewCoordinator(users, posts, comments, blobs, nopLogger())
	if err := coord.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	dangling, ok := comments.comments["c1"]
	if !ok {
		t.Fatal("another user's comment was unexpectedly cleaned up")
	}
	if _, err := posts.FindByID(context.Background(), dangling.PostID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatal("the dangling comment should reference a deleted post")
	}
}

func TestCoordinator_DeleteUser_PartialFailure(t *testing.T) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	comments := newStubCommentRepo()
	blobs := newStubBlobs()

	users.add(&domain.User{ID: "u1", Email: "u1@test.dev"})
	posts.add(&domain.Post{ID: "p1", OwnerID: "u1"})
	comments.deleteByOwnerErr = errors.New("collection offline")

	coord := NewCoordinator(users, posts, comments, blobs, nopLogger())
	err := coord.DeleteUser(context.Background(), "u1")

	var pf *domain.PartialFailureError
	if !errors.As(err, &pf) {
		t.Fatalf("expected PartialFailureError, got %v", err)
	}
	if pf.Op != "delete_user" {
		t.Fatalf("Op = %q, want delete_user", pf.Op)
	}
	if pf.Failed != StepDeleteUserComments {
		t.Fatalf("Failed = %q, want %q", pf.Failed, StepDeleteUserComments)
	}

	// Posts are already gone, the account is not.
	if _, ok := posts.posts["p1"]; ok {
		t.Fatal("posts deleted before the failing step must stay deleted")
	}
	if _, ok := users.users["u1"]; !ok {
		t.Fatal("user record must survive an aborted cascade")
	}
}
