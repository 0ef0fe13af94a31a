package service

import (
	"context"
	"errors"
	"sync"

	"giggles.com/cmd/model"
	"giggles.com/pkg/mq"
)

var errStore = errors.New("store unavailable")

// fakeStore 内存版点赞/评论表
type fakeStore struct {
	mu       sync.Mutex
	likes    map[string]map[string]bool // video -> users
	comments map[string][]*model.Comment
	videos   map[string]*model.Video

	failUpsert, failDelete, failCount, failUpdate, failCreate, failList bool

	updates   int
	lastLimit int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		likes:    map[string]map[string]bool{},
		comments: map[string][]*model.Comment{},
		videos:   map[string]*model.Video{},
	}
}

func (f *fakeStore) video(id string) *model.Video {
	v, ok := f.videos[id]
	if !ok {
		v = &model.Video{ID: id}
		f.videos[id] = v
	}
	return v
}

func (f *fakeStore) UpsertLike(ctx context.Context, videoID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert {
		return errStore
	}
	if f.likes[videoID] == nil {
		f.likes[videoID] = map[string]bool{}
	}
	f.likes[videoID][userID] = true
	return nil
}

func (f *fakeStore) DeleteLike(ctx context.Context, videoID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errStore
	}
	delete(f.likes[videoID], userID)
	return nil
}

func (f *fakeStore) GetLikedVideoIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.failList {
		return nil, errStore
	}
	ids := make([]string, 0)
	for video, users := range f.likes {
		if users[userID] && len(ids) < limit {
			ids = append(ids, video)
		}
	}
	return ids, nil
}

func (f *fakeStore) CountVideoLikes(ctx context.Context, videoID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCount {
		return 0, errStore
	}
	return int64(len(f.likes[videoID])), nil
}

func (f *fakeStore) UpdateVideoLikeCount(ctx context.Context, videoID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errStore
	}
	f.updates++
	f.video(videoID).LikeCount = count
	return nil
}

func (f *fakeStore) CountVideoComments(ctx context.Context, videoID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCount {
		return 0, errStore
	}
	return int64(len(f.comments[videoID])), nil
}

func (f *fakeStore) UpdateVideoCommentCount(ctx context.Context, videoID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errStore
	}
	f.updates++
	f.video(videoID).CommentCount = count
	return nil
}

func (f *fakeStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errStore
	}
	f.comments[comment.VideoID] = append(f.comments[comment.VideoID], comment)
	return nil
}

type fakeUsers map[string]string

func (u fakeUsers) GetUsername(ctx context.Context, userID string) (string, error) {
	if u == nil {
		return "", errStore
	}
	return u[userID], nil
}

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

type fakeProducer struct {
	likes    []*mq.LikeEvent
	comments []*mq.CommentEvent
	err      error
}

func (p *fakeProducer) PublishLikeEvent(ctx context.Context, event *mq.LikeEvent) error {
	p.likes = append(p.likes, event)
	return p.err
}

func (p *fakeProducer) PublishCommentEvent(ctx context.Context, event *mq.CommentEvent) error {
	p.comments = append(p.comments, event)
	return p.err
}
