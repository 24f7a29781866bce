package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bbois1999/gun-event/domain"
	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts map[string]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*domain.Post{}}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *domain.Post, images []domain.NewPostImage) error {
	for i, img := range images {
		post.Images = append(post.Images, domain.PostImage{
			ID: uuid.NewString(), URL: img.URL, Key: img.Key, PostID: post.ID, Position: i,
		})
	}
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *fakePostRepo) ListPosts(_ context.Context, q domain.PostQuery) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if q.AuthorID != "" && p.AuthorID != q.AuthorID {
			continue
		}
		if len(q.AuthorIDs) > 0 {
			found := false
			for _, id := range q.AuthorIDs {
				if p.AuthorID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, post *domain.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

type fakeSocialRepo struct {
	likes   map[string]*domain.Like // userID + "/" + postID
	follows map[string]bool         // followerID + "/" + followedID
}

func newFakeSocialRepo() *fakeSocialRepo {
	return &fakeSocialRepo{likes: map[string]*domain.Like{}, follows: map[string]bool{}}
}

func (r *fakeSocialRepo) CreateLike(_ context.Context, like *domain.Like) error {
	r.likes[like.UserID+"/"+like.PostID] = like
	return nil
}

func (r *fakeSocialRepo) FindLike(_ context.Context, userID, postID string) (*domain.Like, error) {
	if l, ok := r.likes[userID+"/"+postID]; ok {
		return l, nil
	}
	return nil, domain.ErrLikeNotFound
}

func (r *fakeSocialRepo) DeleteLike(_ context.Context, userID, postID string) (int64, error) {
	key := userID + "/" + postID
	if _, ok := r.likes[key]; !ok {
		return 0, nil
	}
	delete(r.likes, key)
	return 1, nil
}

func (r *fakeSocialRepo) CreateFollow(_ context.Context, follow *domain.Follow) error {
	r.follows[follow.FollowerID+"/"+follow.FollowedID] = true
	return nil
}

func (r *fakeSocialRepo) DeleteFollow(_ context.Context, followerID, followedID string) (int64, error) {
	key := followerID + "/" + followedID
	if !r.follows[key] {
		return 0, nil
	}
	delete(r.follows, key)
	return 1, nil
}

func (r *fakeSocialRepo) CountFollowers(_ context.Context, userID string) (int64, error) {
	var n int64
	for key := range r.follows {
		if strings.HasSuffix(key, "/"+userID) {
			n++
		}
	}
	return n, nil
}

func (r *fakeSocialRepo) IsFollowing(_ context.Context, followerID, followedID string) (bool, error) {
	return r.follows[followerID+"/"+followedID], nil
}

func (r *fakeSocialRepo) ListFollowedIDs(_ context.Context, followerID string) ([]string, error) {
	var out []string
	prefix := followerID + "/"
	for key := range r.follows {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, key[len(prefix):])
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []*domain.Notification
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *domain.Notification) error {
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) ListNotifications(_ context.Context, userID string, limit int, _ string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && len(out) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, notif := range r.notifications {
		if notif.UserID == userID && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID string, ids []string) error {
	for _, notif := range r.notifications {
		for _, id := range ids {
			if notif.UserID == userID && notif.ID == id {
				notif.Read = true
			}
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, notif := range r.notifications {
		if notif.UserID == userID {
			notif.Read = true
		}
	}
	return nil
}

type socialFixture struct {
	users         *fakeUserRepo
	posts         *fakePostRepo
	social        *fakeSocialRepo
	notifications *fakeNotificationRepo
	uc            domain.SocialUseCase
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()
	f := &socialFixture{
		users:         newFakeUserRepo(),
		posts:         newFakePostRepo(),
		social:        newFakeSocialRepo(),
		notifications: &fakeNotificationRepo{},
	}
	f.uc = NewSocialService(f.social, f.notifications, f.posts, f.users)

	ctx := context.Background()
	require.NoError(t, f.users.CreateUser(ctx, &domain.User{ID: "author", Username: "author", Email: "a@example.com", PhoneNumber: "+15550000001"}))
	require.NoError(t, f.users.CreateUser(ctx, &domain.User{ID: "fan", Username: "fan", Email: "f@example.com", PhoneNumber: "+15550000002"}))
	require.NoError(t, f.posts.CreatePost(ctx, &domain.Post{ID: "post-1", Title: "Range day recap", AuthorID: "author"}, nil))
	return f
}

func TestLikePost_NotifiesAuthor(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.LikePost(ctx, "fan", "post-1"))

	_, err := f.social.FindLike(ctx, "fan", "post-1")
	assert.NoError(t, err)

	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, "like", n.Type)
	assert.Equal(t, "author", n.UserID)
	assert.Equal(t, "fan", n.SenderID)
	assert.Equal(t, `fan liked your post "Range day recap"`, n.Message)
}

func TestLikePost_SelfLikeSkipsNotification(t *testing.T) {
	f := newSocialFixture(t)

	require.NoError(t, f.uc.LikePost(context.Background(), "author", "post-1"))
	assert.Empty(t, f.notifications.notifications)
}

func TestLikePost_Duplicate(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.LikePost(ctx, "fan", "post-1"))
	err := f.uc.LikePost(ctx, "fan", "post-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyLiked)
	assert.Len(t, f.notifications.notifications, 1)
}

func TestLikePost_MissingPost(t *testing.T) {
	f := newSocialFixture(t)

	err := f.uc.LikePost(context.Background(), "fan", "no-such-post")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestUnlikePost(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.UnlikePost(ctx, "fan", "post-1"), domain.ErrLikeNotFound)

	require.NoError(t, f.uc.LikePost(ctx, "fan", "post-1"))
	assert.NoError(t, f.uc.UnlikePost(ctx, "fan", "post-1"))
	_, err := f.social.FindLike(ctx, "fan", "post-1")
	assert.ErrorIs(t, err, domain.ErrLikeNotFound)
}

func TestFollow_IdempotentAndNotifies(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Follow(ctx, "fan", "author"))
	require.NoError(t, f.uc.Follow(ctx, "fan", "author")) // no-op

	stats, err := f.uc.FollowerStats(ctx, "author", "fan")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count)
	assert.True(t, stats.IsFollowing)

	require.Len(t, f.notifications.notifications, 1)
	assert.Equal(t, "follow", f.notifications.notifications[0].Type)
	assert.Equal(t, "fan started following you", f.notifications.notifications[0].Message)
}

func TestFollow_UnknownUser(t *testing.T) {
	f := newSocialFixture(t)

	err := f.uc.Follow(context.Background(), "fan", "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNotificationsPageAndMarkRead(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.LikePost(ctx, "fan", "post-1"))
	require.NoError(t, f.uc.Follow(ctx, "fan", "author"))

	page, err := f.uc.Notifications(ctx, "author", 20, "")
	require.NoError(t, err)
	assert.Len(t, page.Notifications, 2)
	assert.Equal(t, int64(2), page.UnreadCount)
	assert.Nil(t, page.NextCursor)

	require.NoError(t, f.uc.MarkNotificationsRead(ctx, "author", nil))

	page, err = f.uc.Notifications(ctx, "author", 20, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.UnreadCount)
}
