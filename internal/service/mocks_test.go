package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/yasyapobeda/homework-bot/internal/models"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return nil
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdateFIO(_ context.Context, id int64, fio string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.FIO = &fio
	}
	return nil
}

func (r *fakeUserRepo) UpdateLangCode(_ context.Context, id int64, langCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LangCode = &langCode
	}
	return nil
}

type fakeContainerRepo struct {
	mu           sync.Mutex
	nextID       int64
	containers   map[int64]*models.Container
	participants map[int64]map[int64]bool
}

func newFakeContainerRepo() *fakeContainerRepo {
	return &fakeContainerRepo{
		containers:   make(map[int64]*models.Container),
		participants: make(map[int64]map[int64]bool),
	}
}

func (r *fakeContainerRepo) Create(_ context.Context, container *models.Container) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *container
	clone.ID = r.nextID
	r.containers[clone.ID] = &clone
	return clone.ID, nil
}

func (r *fakeContainerRepo) GetByID(_ context.Context, id int64) (*models.ContainerWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.containers[id]
	if !ok {
		return nil, nil
	}
	return &models.ContainerWithOwner{Container: *c}, nil
}

func (r *fakeContainerRepo) GetByInviteCode(_ context.Context, code string) (*models.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.containers {
		if c.InviteCode == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeContainerRepo) ExistsByOwnerAndName(_ context.Context, ownerID int64, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.containers {
		if c.OwnerID == ownerID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContainerRepo) ListVisible(_ context.Context, userID int64) ([]models.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Container
	for _, c := range r.containers {
		member := r.participants[c.ID][userID]
		if c.OwnerID == userID || (member && !c.IsArchived) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeContainerRepo) Archive(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.containers[id]; ok {
		c.IsArchived = true
	}
	return nil
}

func (r *fakeContainerRepo) AddParticipant(_ context.Context, containerID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.participants[containerID] == nil {
		r.participants[containerID] = make(map[int64]bool)
	}
	r.participants[containerID][userID] = true
	return nil
}

func (r *fakeContainerRepo) IsMember(_ context.Context, containerID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.containers[containerID]; ok && c.OwnerID == userID {
		return true, nil
	}
	return r.participants[containerID][userID], nil
}

type fakeHomeworkRepo struct {
	mu        sync.Mutex
	nextID    int64
	homeworks map[int64]*models.HomeworkWithOwner
}

func newFakeHomeworkRepo() *fakeHomeworkRepo {
	return &fakeHomeworkRepo{homeworks: make(map[int64]*models.HomeworkWithOwner)}
}

func (r *fakeHomeworkRepo) Create(_ context.Context, homework *models.Homework) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *homework
	clone.ID = r.nextID
	r.homeworks[clone.ID] = &models.HomeworkWithOwner{Homework: clone}
	return clone.ID, nil
}

func (r *fakeHomeworkRepo) GetByID(_ context.Context, id int64) (*models.HomeworkWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.homeworks[id]
	if !ok {
		return nil, nil
	}
	clone := *h
	return &clone, nil
}

func (r *fakeHomeworkRepo) GetByContainerAndOwner(_ context.Context, containerID, ownerID int64) (*models.Homework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *models.Homework
	for _, h := range r.homeworks {
		if h.ContainerID == containerID && h.OwnerID == ownerID {
			if found == nil || h.ID < found.ID {
				clone := h.Homework
				found = &clone
			}
		}
	}
	return found, nil
}

func (r *fakeHomeworkRepo) ListByContainer(_ context.Context, containerID int64) ([]models.HomeworkWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.HomeworkWithOwner
	for id := int64(1); id <= r.nextID; id++ {
		if h, ok := r.homeworks[id]; ok && h.ContainerID == containerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHomeworkRepo) SetMark(_ context.Context, id int64, mark int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.homeworks[id]; ok {
		m := mark
		h.Mark = &m
	}
	return nil
}

type fakeRelay struct {
	mu        sync.Mutex
	files     map[string][]byte
	failIDs   map[string]bool
	uploads   []string
	downloads []string
	nextFile  int
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{
		files:   make(map[string][]byte),
		failIDs: make(map[string]bool),
	}
}

func (r *fakeRelay) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloads = append(r.downloads, fileID)
	if r.failIDs[fileID] {
		return nil, fmt.Errorf("file %s is unavailable", fileID)
	}
	if data, ok := r.files[fileID]; ok {
		return data, nil
	}
	return []byte("payload of " + fileID), nil
}

func (r *fakeRelay) UploadDocument(_ context.Context, _ int64, name string, _ []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, name)
	r.nextFile++
	return fmt.Sprintf("archived-%d", r.nextFile), nil
}

type fakeSummarizer struct {
	label string
	err   error
	calls int
}

func (s *fakeSummarizer) SummarizeHomework(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.label, s.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*models.HomeworkSubmittedEvent
	err    error
}

func (p *fakePublisher) PublishHomeworkSubmitted(_ context.Context, event *models.HomeworkSubmittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
