package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasyapobeda/homework-bot/internal/models"
)

type homeworkFixture struct {
	svc        HomeworkService
	homeworks  *fakeHomeworkRepo
	containers *fakeContainerRepo
	relay      *fakeRelay
	summarizer *fakeSummarizer
	publisher  *fakePublisher
	container  *models.Container
}

func newHomeworkFixture(t *testing.T) *homeworkFixture {
	t.Helper()

	f := &homeworkFixture{
		homeworks:  newFakeHomeworkRepo(),
		containers: newFakeContainerRepo(),
		relay:      newFakeRelay(),
		summarizer: &fakeSummarizer{label: "Математика_Анализ"},
		publisher:  &fakePublisher{},
	}

	id, err := f.containers.Create(context.Background(), &models.Container{
		OwnerID:    1,
		Name:       "Матан",
		InviteCode: "abcdefghij",
	})
	require.NoError(t, err)
	f.container = f.containers.containers[id]

	f.svc = NewHomeworkService(
		f.homeworks,
		f.containers,
		f.relay,
		f.summarizer,
		f.publisher,
		-100500, // архивный чат
		5,
		16000,
		time.UTC,
		zerolog.Nop(),
	)
	return f
}

func (f *homeworkFixture) request() *SubmitRequest {
	return &SubmitRequest{
		ContainerID: f.container.ID,
		OwnerID:     2,
		OwnerFIO:    "Ivanov Ivan Ivanovich",
	}
}

func TestSubmitFileSizeLimit(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.FileID = "file-1"
	req.FileName = "report.txt"
	req.FileSize = 5 * 1024 * 1024 // ровно на границе

	_, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	req = f.request()
	req.FileID = "file-2"
	req.FileName = "report.txt"
	req.FileSize = 5*1024*1024 + 1

	_, err = f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Len(t, f.homeworks.homeworks, 1)
	assert.NotContains(t, f.relay.downloads, "file-2")
}

func TestSubmitBadFileName(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.FileID = "file-1"
	req.FileName = "noextension"
	req.FileSize = 100

	_, err := f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrBadFileName)
	assert.Empty(t, f.homeworks.homeworks)
}

func TestSubmitRelaysAndNames(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.FileID = "file-1"
	req.FileName = "my report.DOCX"
	req.FileSize = 100

	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	day := time.Now().UTC().Format("02_01")
	assert.Equal(t, "Ivanov_"+day+"_my-report.docx", homework.Name)
	assert.Equal(t, "archived-1", homework.FileID)
	// Не PDF — классификация не вызывается.
	assert.Zero(t, f.summarizer.calls)
	require.Len(t, f.relay.uploads, 1)
	assert.Equal(t, homework.Name, f.relay.uploads[0])
}

func TestSubmitPDFFallsBackOnBrokenFile(t *testing.T) {
	f := newHomeworkFixture(t)
	f.relay.files["file-1"] = []byte("definitely not a pdf")

	req := f.request()
	req.FileID = "file-1"
	req.FileName = "lab report.pdf"
	req.FileSize = 100

	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	// Текст извлечь не удалось, метка берётся из имени файла.
	assert.True(t, strings.HasSuffix(homework.Name, "_lab-report.pdf"), homework.Name)
	assert.Zero(t, f.summarizer.calls)
}

func TestSubmitText(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.Text = "решение: x = 42"

	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, homework.FileID)
	require.NotNil(t, homework.Text)
	assert.Equal(t, "решение: x = 42", *homework.Text)
	assert.True(t, strings.HasSuffix(homework.Name, "_text.txt"), homework.Name)
	assert.Empty(t, f.relay.downloads)
	assert.Empty(t, f.relay.uploads)
}

func TestSubmitToArchivedContainer(t *testing.T) {
	f := newHomeworkFixture(t)
	require.NoError(t, f.containers.Archive(context.Background(), f.container.ID))

	req := f.request()
	req.Text = "поздно"

	_, err := f.svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrContainerArchived)
}

func TestSubmitPublishesEvent(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.FileID = "file-1"
	req.FileName = "report.txt"
	req.FileSize = 100

	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, homework.ID, event.HomeworkID)
	assert.Equal(t, f.container.ID, event.ContainerID)
	assert.NotEmpty(t, event.EventID)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	f := newHomeworkFixture(t)
	f.publisher.err = assert.AnError

	req := f.request()
	req.Text = "решение"

	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.NotZero(t, homework.ID)
}

func TestSetMark(t *testing.T) {
	f := newHomeworkFixture(t)

	req := f.request()
	req.Text = "решение"
	homework, err := f.svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.SetMark(context.Background(), homework.ID, -2), ErrInvalidMark)

	require.NoError(t, f.svc.SetMark(context.Background(), homework.ID, 9))
	stored, err := f.svc.Get(context.Background(), homework.ID)
	require.NoError(t, err)
	require.True(t, stored.Graded())
	assert.Equal(t, 9, *stored.Mark)
	assert.False(t, stored.Failed())

	require.NoError(t, f.svc.SetMark(context.Background(), homework.ID, models.MarkFail))
	stored, err = f.svc.Get(context.Background(), homework.ID)
	require.NoError(t, err)
	assert.True(t, stored.Failed())
}

func TestGetNotFound(t *testing.T) {
	f := newHomeworkFixture(t)

	_, err := f.svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrHomeworkNotFound)
}
