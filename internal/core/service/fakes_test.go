package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	creates int
	err     error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.SessionIDs = append([]string(nil), u.SessionIDs...)
	return &c
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.creates++
	c := cloneUser(user)
	c.ID = "id-" + user.Username
	r.users[user.Username] = c
	return cloneUser(c), nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindBySession(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.HasSession(token) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindFirstMatching(_ context.Context, term string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		if strings.Contains(name, term) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, domain.ErrUserNotFound
	}
	sort.Strings(names)
	return cloneUser(r.users[names[0]]), nil
}

func (r *memUserRepo) AddSession(_ context.Context, username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SessionIDs = append(u.SessionIDs, token)
	return nil
}

func (r *memUserRepo) RemoveSession(_ context.Context, username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil
	}
	kept := u.SessionIDs[:0]
	for _, s := range u.SessionIDs {
		if s != token {
			kept = append(kept, s)
		}
	}
	u.SessionIDs = kept
	return nil
}

func (r *memUserRepo) SetLastPlayed(_ context.Context, username, audioID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastPlayedSong = audioID
	return nil
}

// memSessionCache follows the Redis cache: fills are SET NX and revocation
// leaves a marker behind.
type memSessionCache struct {
	mu      sync.Mutex
	entries map[string]string
	revoked map[string]bool
	err     error
	gets    int
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{entries: make(map[string]string), revoked: make(map[string]bool)}
}

func (c *memSessionCache) Get(_ context.Context, token string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return "", false, c.err
	}
	if c.revoked[token] {
		return "", false, domain.ErrSessionRevoked
	}
	u, ok := c.entries[token]
	return u, ok, nil
}

func (c *memSessionCache) Set(_ context.Context, token, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if _, ok := c.entries[token]; ok || c.revoked[token] {
		return nil
	}
	c.entries[token] = username
	return nil
}

func (c *memSessionCache) Revoke(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	delete(c.entries, token)
	c.revoked[token] = true
	return nil
}

// memSongRepo mirrors the conditional update semantics of the Mongo
// repository under a single lock.
type memSongRepo struct {
	mu     sync.Mutex
	songs  map[string]*domain.Song
	writes int
}

func newMemSongRepo(songs ...*domain.Song) *memSongRepo {
	r := &memSongRepo{songs: make(map[string]*domain.Song)}
	for _, s := range songs {
		r.songs[s.AudioID] = cloneSong(s)
	}
	return r
}

func cloneSong(s *domain.Song) *domain.Song {
	c := *s
	c.Likes = append([]string{}, s.Likes...)
	c.Comments = append([]domain.Comment{}, s.Comments...)
	return &c
}

func (r *memSongRepo) Create(_ context.Context, s *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[s.AudioID]; ok {
		return domain.ErrSongExists
	}
	r.writes++
	r.songs[s.AudioID] = cloneSong(s)
	return nil
}

func (r *memSongRepo) FindByAudioID(_ context.Context, audioID string) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	return cloneSong(s), nil
}

func (r *memSongRepo) filter(keep func(*domain.Song) bool) []*domain.Song {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Song{}
	for _, s := range r.songs {
		if keep(s) {
			out = append(out, cloneSong(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AudioID < out[j].AudioID })
	return out
}

func (r *memSongRepo) FindByUsername(_ context.Context, username string) ([]*domain.Song, error) {
	return r.filter(func(s *domain.Song) bool { return s.Username == username }), nil
}

func (r *memSongRepo) Search(_ context.Context, term string) ([]*domain.Song, error) {
	return r.filter(func(s *domain.Song) bool {
		return strings.Contains(s.Title, term) || strings.Contains(s.Username, term)
	}), nil
}

func (r *memSongRepo) LikedBy(_ context.Context, username string) ([]string, error) {
	ids := []string{}
	for _, s := range r.filter(func(s *domain.Song) bool { return s.LikedBy(username) }) {
		ids = append(ids, s.AudioID)
	}
	return ids, nil
}

func (r *memSongRepo) Exists(_ context.Context, audioID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.songs[audioID]
	return ok, nil
}

func (r *memSongRepo) IncrementListens(_ context.Context, audioID string) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	r.writes++
	s.Listens++
	return cloneSong(s), nil
}

func (r *memSongRepo) AddLike(_ context.Context, audioID, username string) (*domain.Song, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok || s.LikedBy(username) {
		return nil, false, nil
	}
	r.writes++
	s.Likes = append(s.Likes, username)
	return cloneSong(s), true, nil
}

func (r *memSongRepo) RemoveLike(_ context.Context, audioID, username string) (*domain.Song, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok || !s.LikedBy(username) {
		return nil, false, nil
	}
	r.writes++
	kept := s.Likes[:0]
	for _, u := range s.Likes {
		if u != username {
			kept = append(kept, u)
		}
	}
	s.Likes = kept
	return cloneSong(s), true, nil
}

func (r *memSongRepo) PushComment(_ context.Context, audioID string, c domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok {
		return domain.ErrSongNotFound
	}
	for _, existing := range s.Comments {
		if existing.ID == c.ID {
			return domain.ErrCommentExists
		}
	}
	r.writes++
	s.Comments = append(s.Comments, c)
	return nil
}

func (r *memSongRepo) PullComment(_ context.Context, audioID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[audioID]
	if !ok {
		return domain.ErrSongNotFound
	}
	kept := s.Comments[:0]
	for _, c := range s.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	s.Comments = kept
	return nil
}

type memLabelRepo map[string]string

func (m memLabelRepo) FindByUsername(_ context.Context, username string) (*domain.RecordLabel, error) {
	name, ok := m[username]
	if !ok {
		return nil, domain.ErrRecordLabelNotFound
	}
	return &domain.RecordLabel{Username: username, Name: name}, nil
}

type recordedPlayback struct {
	mu     sync.Mutex
	events []string
}

func (p *recordedPlayback) Record(ev ports.PlaybackEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev.Username+":"+ev.AudioID)
}

type recordedActivity struct {
	mu     sync.Mutex
	events []ports.ActivityEvent
}

func (a *recordedActivity) Publish(_ context.Context, ev ports.ActivityEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return nil
}

func (a *recordedActivity) kinds() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Kind)
	}
	return out
}
