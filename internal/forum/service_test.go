package forum

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agoraforum/agora/internal/db"
	"github.com/agoraforum/agora/internal/models"
	"github.com/agoraforum/agora/pkg/config"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	url := "sqlite://" + filepath.Join(t.TempDir(), "forum.db")
	database, err := db.New(&config.DatabaseConfig{URL: url}, "ERROR")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return NewService(database, bcrypt.MinCost), database
}

func mustCreateUser(t *testing.T, database *db.DB, email string, isAdmin bool) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "x", IsAdmin: isAdmin}
	users := db.NewUserRepository(db.NewRepository(database.DB))
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

func mustCreatePost(t *testing.T, database *db.DB, user *models.User, status string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:       "title",
		Content:     sql.NullString{String: "content", Valid: true},
		Status:      status,
		CreatedByID: user.ID,
		CreatedAt:   createdAt,
	}
	posts := db.NewPostRepository(db.NewRepository(database.DB))
	if err := posts.Create(context.Background(), post); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}

func TestCreatePostInitialStatus(t *testing.T) {
	tests := []struct {
		name     string
		isAdmin  bool
		expected string
	}{
		{name: "regular user starts pending", isAdmin: false, expected: models.StatusPending},
		{name: "admin starts approved", isAdmin: true, expected: models.StatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, database := newTestService(t)
			user := mustCreateUser(t, database, "creator@example.com", tt.isAdmin)

			post, err := svc.CreatePost(context.Background(), user.ID, tt.isAdmin, "Hello", "world")
			if err != nil {
				t.Fatalf("CreatePost() error: %v", err)
			}
			if post.Status != tt.expected {
				t.Errorf("CreatePost() status = %s, want %s", post.Status, tt.expected)
			}
		})
	}
}

func TestCreatePostUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreatePost(context.Background(), 42, false, "Hello", "world")
	if KindOf(err) != KindNotFound {
		t.Errorf("CreatePost() with missing user: kind = %v, want KindNotFound", KindOf(err))
	}
}

func TestListPublicOnlyApproved(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)

	base := time.Date(2022, 11, 14, 5, 15, 0, 0, time.UTC)
	mustCreatePost(t, database, user, models.StatusPending, base)
	mustCreatePost(t, database, user, models.StatusRejected, base.Add(time.Hour))
	oldApproved := mustCreatePost(t, database, user, models.StatusApproved, base.Add(2*time.Hour))
	newApproved := mustCreatePost(t, database, user, models.StatusApproved, base.Add(3*time.Hour))

	posts, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic() error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("ListPublic() returned %d posts, want 2", len(posts))
	}
	for _, p := range posts {
		if p.Status != models.StatusApproved {
			t.Errorf("ListPublic() returned post with status %s", p.Status)
		}
	}
	if posts[0].ID != newApproved.ID || posts[1].ID != oldApproved.ID {
		t.Errorf("ListPublic() order = [%d %d], want [%d %d] (newest first)",
			posts[0].ID, posts[1].ID, newApproved.ID, oldApproved.ID)
	}
}

func TestListForOwnerScoping(t *testing.T) {
	svc, database := newTestService(t)
	alice := mustCreateUser(t, database, "alice@example.com", false)
	bob := mustCreateUser(t, database, "bob@example.com", false)

	base := time.Date(2022, 11, 14, 5, 15, 0, 0, time.UTC)
	mustCreatePost(t, database, alice, models.StatusPending, base)
	mustCreatePost(t, database, alice, models.StatusApproved, base.Add(time.Hour))
	mustCreatePost(t, database, bob, models.StatusRejected, base.Add(2*time.Hour))

	own, err := svc.ListForOwner(context.Background(), alice.ID, false)
	if err != nil {
		t.Fatalf("ListForOwner(alice, false) error: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("ListForOwner(alice, false) returned %d posts, want 2", len(own))
	}
	for _, p := range own {
		if p.CreatedByID != alice.ID {
			t.Errorf("ListForOwner(alice, false) returned post by user %d", p.CreatedByID)
		}
	}

	all, err := svc.ListForOwner(context.Background(), alice.ID, true)
	if err != nil {
		t.Fatalf("ListForOwner(alice, true) error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListForOwner(alice, true) returned %d posts, want 3", len(all))
	}
}

func TestListPendingScoping(t *testing.T) {
	svc, database := newTestService(t)
	alice := mustCreateUser(t, database, "alice@example.com", false)
	bob := mustCreateUser(t, database, "bob@example.com", false)

	base := time.Date(2022, 11, 14, 5, 15, 0, 0, time.UTC)
	mustCreatePost(t, database, alice, models.StatusPending, base)
	mustCreatePost(t, database, alice, models.StatusApproved, base.Add(time.Hour))
	mustCreatePost(t, database, bob, models.StatusPending, base.Add(2*time.Hour))

	own, err := svc.ListPending(context.Background(), alice.ID, false)
	if err != nil {
		t.Fatalf("ListPending(alice, false) error: %v", err)
	}
	if len(own) != 1 || own[0].CreatedByID != alice.ID {
		t.Errorf("ListPending(alice, false) should return only alice's pending post, got %d posts", len(own))
	}

	all, err := svc.ListPending(context.Background(), alice.ID, true)
	if err != nil {
		t.Fatalf("ListPending(alice, true) error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListPending(alice, true) returned %d posts, want 2", len(all))
	}
	for _, p := range all {
		if p.Status != models.StatusPending {
			t.Errorf("ListPending(alice, true) returned post with status %s", p.Status)
		}
	}
}

func TestSetStatusOverwrites(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusPending, time.Now().UTC())

	// No transition graph: every state is reachable from every other,
	// including moving back to PENDING.
	for _, status := range []string{
		models.StatusApproved,
		models.StatusRejected,
		models.StatusPending,
		models.StatusApproved,
	} {
		if err := svc.SetStatus(context.Background(), post.ID, status); err != nil {
			t.Fatalf("SetStatus(%s) error: %v", status, err)
		}

		posts := db.NewPostRepository(db.NewRepository(database.DB))
		got, err := posts.GetByID(context.Background(), post.ID)
		if err != nil || got == nil {
			t.Fatalf("GetByID() after SetStatus(%s): post=%v err=%v", status, got, err)
		}
		if got.Status != status {
			t.Errorf("status after SetStatus(%s) = %s", status, got.Status)
		}
	}
}

func TestSetStatusErrors(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusPending, time.Now().UTC())

	if err := svc.SetStatus(context.Background(), 999, models.StatusApproved); KindOf(err) != KindNotFound {
		t.Errorf("SetStatus(missing post): kind = %v, want KindNotFound", KindOf(err))
	}
	if err := svc.SetStatus(context.Background(), post.ID, "SHADOWBANNED"); KindOf(err) != KindInvalidInput {
		t.Errorf("SetStatus(invalid status): kind = %v, want KindInvalidInput", KindOf(err))
	}
}

func TestDeletePostCascades(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusApproved, time.Now().UTC())
	other := mustCreatePost(t, database, user, models.StatusApproved, time.Now().UTC())

	if _, err := svc.AddComment(context.Background(), post.ID, user.ID, "first"); err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}
	if _, err := svc.AddComment(context.Background(), post.ID, user.ID, "second"); err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}
	if _, err := svc.AddComment(context.Background(), other.ID, user.ID, "keep"); err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}

	if err := svc.DeletePost(context.Background(), post.ID); err != nil {
		t.Fatalf("DeletePost() error: %v", err)
	}

	if _, _, err := svc.GetPostWithComments(context.Background(), post.ID); KindOf(err) != KindNotFound {
		t.Errorf("GetPostWithComments() after delete: kind = %v, want KindNotFound", KindOf(err))
	}

	comments := db.NewCommentRepository(db.NewRepository(database.DB))
	count, err := comments.CountByPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("CountByPost() error: %v", err)
	}
	if count != 0 {
		t.Errorf("deleted post still has %d comments", count)
	}

	// The cascade stays scoped to the deleted post.
	kept, err := comments.CountByPost(context.Background(), other.ID)
	if err != nil {
		t.Fatalf("CountByPost() error: %v", err)
	}
	if kept != 1 {
		t.Errorf("unrelated post lost comments: %d remaining, want 1", kept)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.DeletePost(context.Background(), 123); KindOf(err) != KindNotFound {
		t.Errorf("DeletePost(missing): kind = %v, want KindNotFound", KindOf(err))
	}
}

func TestAddCommentErrors(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusApproved, time.Now().UTC())

	comments := db.NewCommentRepository(db.NewRepository(database.DB))

	tests := []struct {
		name   string
		postID int64
		userID int64
		text   string
		kind   Kind
	}{
		{name: "missing post", postID: 999, userID: user.ID, text: "hi", kind: KindNotFound},
		{name: "missing user", postID: post.ID, userID: 999, text: "hi", kind: KindNotFound},
		{name: "empty text", postID: post.ID, userID: user.ID, text: "", kind: KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := comments.CountByPost(context.Background(), post.ID)

			_, err := svc.AddComment(context.Background(), tt.postID, tt.userID, tt.text)
			if KindOf(err) != tt.kind {
				t.Errorf("AddComment() kind = %v, want %v", KindOf(err), tt.kind)
			}

			after, _ := comments.CountByPost(context.Background(), post.ID)
			if before != after {
				t.Errorf("failed AddComment() changed comment count: %d -> %d", before, after)
			}
		})
	}
}

func TestAddComment(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusApproved, time.Now().UTC())

	comment, err := svc.AddComment(context.Background(), post.ID, user.ID, "well said")
	if err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}
	if comment.ID == 0 {
		t.Error("AddComment() did not assign an id")
	}
	if comment.PostID != post.ID || comment.CreatedByID != user.ID {
		t.Errorf("AddComment() references = (%d, %d), want (%d, %d)",
			comment.PostID, comment.CreatedByID, post.ID, user.ID)
	}
	if comment.CreatedBy == nil || comment.CreatedBy.Email != user.Email {
		t.Error("AddComment() did not attach the creator")
	}
	if comment.CreatedAt.IsZero() {
		t.Error("AddComment() did not stamp creation time")
	}
}

func TestGetPostWithComments(t *testing.T) {
	svc, database := newTestService(t)
	user := mustCreateUser(t, database, "creator@example.com", false)
	post := mustCreatePost(t, database, user, models.StatusApproved, time.Now().UTC())

	for _, text := range []string{"one", "two", "three"} {
		if _, err := svc.AddComment(context.Background(), post.ID, user.ID, text); err != nil {
			t.Fatalf("AddComment(%s) error: %v", text, err)
		}
	}

	got, comments, err := svc.GetPostWithComments(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetPostWithComments() error: %v", err)
	}
	if got.ID != post.ID {
		t.Errorf("GetPostWithComments() post id = %d, want %d", got.ID, post.ID)
	}
	if got.CreatedBy == nil {
		t.Error("GetPostWithComments() did not preload the post creator")
	}
	if len(comments) != 3 {
		t.Errorf("GetPostWithComments() returned %d comments, want 3", len(comments))
	}
}

func TestRegister(t *testing.T) {
	svc, database := newTestService(t)

	user, err := svc.Register(context.Background(), "a@b.com", "Abcde1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.IsAdmin {
		t.Error("Register() must never create an admin")
	}
	if user.Password == "Abcde1" {
		t.Error("Register() stored the plain password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Abcde1")); err != nil {
		t.Errorf("stored password is not a valid bcrypt hash of the input: %v", err)
	}

	// Second registration for the same email fails and adds no row.
	if _, err := svc.Register(context.Background(), "a@b.com", "Abcde1"); KindOf(err) != KindAlreadyExists {
		t.Errorf("duplicate Register() kind = %v, want KindAlreadyExists", KindOf(err))
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("email = ?", "a@b.com").Count(&count).Error; err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("found %d user rows for a@b.com, want 1", count)
	}
}

func TestVerifyCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	registered, err := svc.Register(context.Background(), "a@b.com", "Abcde1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	creds, err := svc.VerifyCredentials(context.Background(), "a@b.com", "Abcde1")
	if err != nil {
		t.Fatalf("VerifyCredentials() error: %v", err)
	}
	if creds.UserID != registered.ID {
		t.Errorf("VerifyCredentials() userID = %d, want %d", creds.UserID, registered.ID)
	}
	if creds.IsAdmin {
		t.Error("VerifyCredentials() reported admin for a fresh registration")
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "a@b.com", password: "Wrong1x"},
		{name: "unknown email", email: "nobody@b.com", password: "Abcde1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyCredentials(context.Background(), tt.email, tt.password)
			if KindOf(err) != KindBadCredentials {
				t.Errorf("VerifyCredentials() kind = %v, want KindBadCredentials", KindOf(err))
			}
		})
	}
}
