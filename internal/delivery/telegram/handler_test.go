package telegram

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/service"
)

type fakeSender struct {
	sent   []*dialog.RenderedView
	edited []*dialog.RenderedView
	texts  []string
	alerts []string
	nextID int
}

func (f *fakeSender) SendView(_ context.Context, _ int64, view *dialog.RenderedView) (int, error) {
	f.sent = append(f.sent, view)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeSender) EditView(_ context.Context, _ int64, _ int, view *dialog.RenderedView) error {
	f.edited = append(f.edited, view)
	return nil
}

func (f *fakeSender) SendText(_ context.Context, _ int64, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSender) AnswerCallback(_ context.Context, _ string, text string, alert bool) error {
	if alert {
		f.alerts = append(f.alerts, text)
	}
	return nil
}

func (f *fakeSender) lastView() *dialog.RenderedView {
	all := append(append([]*dialog.RenderedView{}, f.sent...), f.edited...)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

type fakeUsers struct {
	service.UserService
	user *models.User
}

func (f *fakeUsers) EnsureUser(_ context.Context, _ int64) (*models.User, error) {
	return f.user, nil
}

func (f *fakeUsers) SetFIO(_ context.Context, _ int64, fio string) error {
	f.user.FIO = &fio
	return nil
}

type fakeContainers struct {
	service.ContainerService
	created    []*models.Container
	containers map[int64]*models.ContainerWithOwner
	joined     *models.Container
	taken      bool
}

func (f *fakeContainers) Create(_ context.Context, ownerID int64, name string, description *string, deadline *time.Time) (*models.Container, error) {
	if f.taken {
		return nil, service.ErrNameTaken
	}
	container := &models.Container{
		ID:          int64(len(f.created) + 1),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Deadline:    deadline,
		InviteCode:  "testinvite",
	}
	f.created = append(f.created, container)
	if f.containers == nil {
		f.containers = make(map[int64]*models.ContainerWithOwner)
	}
	f.containers[container.ID] = &models.ContainerWithOwner{Container: *container}
	return container, nil
}

func (f *fakeContainers) Get(_ context.Context, id int64) (*models.ContainerWithOwner, error) {
	c, ok := f.containers[id]
	if !ok {
		return nil, service.ErrContainerNotFound
	}
	return c, nil
}

func (f *fakeContainers) NameTaken(_ context.Context, _ int64, _ string) (bool, error) {
	return f.taken, nil
}

func (f *fakeContainers) Join(_ context.Context, code string, _ int64) (*models.Container, bool, error) {
	if f.joined == nil {
		return nil, false, service.ErrContainerNotFound
	}
	return f.joined, true, nil
}

type fakeHomeworks struct {
	service.HomeworkService
	homework *models.HomeworkWithOwner
}

func (f *fakeHomeworks) GetByContainerAndOwner(_ context.Context, _, _ int64) (*models.Homework, error) {
	return nil, nil
}

func (f *fakeHomeworks) Get(_ context.Context, _ int64) (*models.HomeworkWithOwner, error) {
	return f.homework, nil
}

type fixture struct {
	engine     *dialog.Engine
	sender     *fakeSender
	handler    *Handler
	users      *fakeUsers
	containers *fakeContainers
	homeworks  *fakeHomeworks
}

func newFixture(t *testing.T, user *models.User) *fixture {
	t.Helper()

	sender := &fakeSender{}
	engine := dialog.NewEngine(sender, zerolog.Nop())

	users := &fakeUsers{user: user}
	containers := &fakeContainers{containers: make(map[int64]*models.ContainerWithOwner)}
	homeworks := &fakeHomeworks{}

	handler := NewHandler(
		users,
		containers,
		homeworks,
		nil,
		nil,
		"homework_test_bot",
		5,
		time.UTC,
		zerolog.Nop(),
	)
	handler.Register(engine)

	return &fixture{
		engine:     engine,
		sender:     sender,
		handler:    handler,
		users:      users,
		containers: containers,
		homeworks:  homeworks,
	}
}

func keyboardLabels(view *dialog.RenderedView) []string {
	var labels []string
	for _, row := range view.Keyboard {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	return labels
}

func registeredUser() *models.User {
	fio := "Иванов Иван Иванович"
	return &models.User{ID: 10, FIO: &fio}
}

func callback(m *dialog.Manager, op, arg string) string {
	return fmt.Sprintf("d|%s|%s|%s", m.Frame().Intent, op, arg)
}

func TestStartUnregisteredShowsRegistration(t *testing.T) {
	f := newFixture(t, &models.User{ID: 10})

	m := f.engine.Manager(10, 10)
	require.NoError(t, f.handler.HandleStart(context.Background(), m, f.users.user, ""))

	assert.Equal(t, RegisterFIO, m.Frame().State)
	require.Len(t, f.sender.sent, 1)
	assert.Contains(t, f.sender.sent[0].Text, "Введите ваше ФИО")
}

func TestStartRegisteredShowsMainMenu(t *testing.T) {
	f := newFixture(t, registeredUser())

	m := f.engine.Manager(10, 10)
	require.NoError(t, f.handler.HandleStart(context.Background(), m, f.users.user, ""))

	assert.Equal(t, MainIntro, m.Frame().State)
	require.Len(t, f.sender.sent, 1)
	assert.Contains(t, f.sender.sent[0].Text, "Привет, Иван!")
}

func TestStartWithJoinPayloadOpensContainer(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.joined = &models.Container{ID: 5, OwnerID: 1, Name: "Матан", InviteCode: "abc"}
	f.containers.containers[5] = &models.ContainerWithOwner{Container: *f.containers.joined}

	m := f.engine.Manager(10, 10)
	require.NoError(t, f.handler.HandleStart(context.Background(), m, f.users.user, "cjoin_abc"))

	require.Len(t, f.sender.texts, 1)
	assert.Contains(t, f.sender.texts[0], "Ты присоединился к контейнеру Матан")

	require.Equal(t, ContainersView, m.Frame().State)
	id, ok := m.Frame().StartInt64("container_id")
	require.True(t, ok)
	assert.Equal(t, int64(5), id)

	view := f.sender.lastView()
	require.NotNil(t, view)
	assert.Contains(t, view.Text, "Матан")
}

func TestRegistrationFlow(t *testing.T) {
	f := newFixture(t, &models.User{ID: 10})

	m := f.engine.Manager(10, 10)
	require.NoError(t, f.handler.HandleStart(context.Background(), m, f.users.user, ""))

	err := f.engine.HandleMessage(context.Background(), m, &dialog.IncomingMessage{Text: "Иванов Иван Иванович"})
	require.NoError(t, err)

	assert.Equal(t, RegisterDone, m.Frame().State)
	require.Len(t, f.sender.sent, 2)
	assert.Contains(t, f.sender.sent[1].Text, "зарегистрировались")

	require.NoError(t, f.engine.HandleCallback(context.Background(), m, "cb", callback(m, "home", "")))
	assert.Equal(t, MainIntro, m.Frame().State)
}

func TestCreateDeadlineRejectsPastDate(t *testing.T) {
	f := newFixture(t, registeredUser())

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(CreateDeadline, nil))

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	err := f.engine.HandleCallback(context.Background(), m, "cb", callback(m, dialog.OpCalendarDay, yesterday))
	require.NoError(t, err)

	assert.Equal(t, CreateDeadline, m.Frame().State)
	require.Len(t, f.sender.alerts, 1)
	assert.Contains(t, f.sender.alerts[0], "Нельзя выбирать дату в прошлом")
	assert.Empty(t, f.sender.sent)
}

func TestCreateDeadlineAcceptsToday(t *testing.T) {
	f := newFixture(t, registeredUser())

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(CreateDeadline, nil))

	today := time.Now().UTC().Format("2006-01-02")
	err := f.engine.HandleCallback(context.Background(), m, "cb", callback(m, dialog.OpCalendarDay, today))
	require.NoError(t, err)

	assert.Equal(t, CreateConfirm, m.Frame().State)
	assert.Equal(t, today, m.Data()["deadline"])
}

func TestCreateFlow(t *testing.T) {
	f := newFixture(t, registeredUser())

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(MainIntro, nil))
	require.NoError(t, m.Start(CreateName, nil))

	require.NoError(t, f.engine.HandleMessage(context.Background(), m, &dialog.IncomingMessage{Text: "Матан ИУ7"}))
	assert.Equal(t, CreateDescription, m.Frame().State)

	require.NoError(t, f.engine.HandleCallback(context.Background(), m, "cb", callback(m, "skip", "")))
	assert.Equal(t, CreateDeadline, m.Frame().State)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	require.NoError(t, f.engine.HandleCallback(context.Background(), m, "cb", callback(m, dialog.OpCalendarDay, tomorrow)))
	assert.Equal(t, CreateConfirm, m.Frame().State)

	require.NoError(t, f.engine.HandleCallback(context.Background(), m, "cb", callback(m, "create", "")))

	require.Len(t, f.containers.created, 1)
	created := f.containers.created[0]
	assert.Equal(t, "Матан ИУ7", created.Name)
	assert.Nil(t, created.Description)
	require.NotNil(t, created.Deadline)
	assert.Equal(t, 23, created.Deadline.Hour())
	assert.Equal(t, 59, created.Deadline.Minute())

	require.Equal(t, ContainersView, m.Frame().State)
	id, ok := m.Frame().StartInt64("container_id")
	require.True(t, ok)
	assert.Equal(t, created.ID, id)
}

func TestCreateNameTaken(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.taken = true

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(CreateName, nil))

	require.NoError(t, f.engine.HandleMessage(context.Background(), m, &dialog.IncomingMessage{Text: "Матан"}))

	assert.Equal(t, CreateName, m.Frame().State)
	require.NotEmpty(t, f.sender.texts)
	assert.Contains(t, f.sender.texts[0], "уже занято")
}

func TestContainerViewButtonsForOwner(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
		ID:         7,
		OwnerID:    10,
		Name:       "Матан",
		InviteCode: "abc",
	}}

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(ContainersView, map[string]any{"container_id": int64(7)}))
	require.NoError(t, m.Show(context.Background()))

	view := f.sender.lastView()
	require.NotNil(t, view)

	var labels []string
	for _, row := range view.Keyboard {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	assert.Contains(t, labels, "📬 Решения")
	assert.Contains(t, labels, "🔗 Поделиться ссылкой")
	assert.Contains(t, labels, "🔒 Архивировать")
	assert.NotContains(t, labels, "➕ Загрузить решение")
}

func TestContainerViewButtonsForStudent(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
		ID:         7,
		OwnerID:    1,
		Name:       "Матан",
		InviteCode: "abc",
	}}

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(ContainersView, map[string]any{"container_id": int64(7)}))
	require.NoError(t, m.Show(context.Background()))

	view := f.sender.lastView()
	require.NotNil(t, view)

	var labels []string
	for _, row := range view.Keyboard {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	assert.Contains(t, labels, "➕ Загрузить решение")
	assert.NotContains(t, labels, "🔒 Архивировать")
	assert.NotContains(t, labels, "📬 Решения")
}

func TestContainerViewButtonsForArchivedOwner(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
		ID:         7,
		OwnerID:    10,
		Name:       "Матан",
		InviteCode: "abc",
		IsArchived: true,
	}}

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(ContainersView, map[string]any{"container_id": int64(7)}))
	require.NoError(t, m.Show(context.Background()))

	view := f.sender.lastView()
	require.NotNil(t, view)

	labels := keyboardLabels(view)
	assert.Contains(t, labels, "📬 Решения")
	assert.Contains(t, labels, "🔗 Поделиться ссылкой")
	assert.NotContains(t, labels, "🔒 Архивировать")
}

func TestHomeworkViewMarkButtons(t *testing.T) {
	homework := func(mark *int) *models.HomeworkWithOwner {
		return &models.HomeworkWithOwner{
			Homework: models.Homework{
				ID:          3,
				CreatedAt:   time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC),
				OwnerID:     20,
				ContainerID: 7,
				Name:        "Ivanov_05_06_report.pdf",
				Mark:        mark,
			},
			OwnerFIO: "Иванов Иван Иванович",
		}
	}

	t.Run("ungraded shows mark buttons", func(t *testing.T) {
		f := newFixture(t, registeredUser())
		f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
			ID: 7, OwnerID: 10, Name: "Матан", InviteCode: "abc",
		}}
		f.homeworks.homework = homework(nil)

		m := f.engine.Manager(10, 10)
		require.NoError(t, m.Start(HomeworksView, map[string]any{"homework_id": int64(3)}))
		require.NoError(t, m.Show(context.Background()))

		view := f.sender.lastView()
		require.NotNil(t, view)

		labels := keyboardLabels(view)
		assert.Contains(t, labels, "#️⃣ Выставить оценку")
		assert.Contains(t, labels, "⛔ Незачёт")
	})

	t.Run("graded hides mark buttons", func(t *testing.T) {
		f := newFixture(t, registeredUser())
		f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
			ID: 7, OwnerID: 10, Name: "Матан", InviteCode: "abc",
		}}
		mark := 9
		f.homeworks.homework = homework(&mark)

		m := f.engine.Manager(10, 10)
		require.NoError(t, m.Start(HomeworksView, map[string]any{"homework_id": int64(3)}))
		require.NoError(t, m.Show(context.Background()))

		view := f.sender.lastView()
		require.NotNil(t, view)
		assert.Contains(t, view.Text, "Выставлена оценка 9")

		labels := keyboardLabels(view)
		assert.NotContains(t, labels, "#️⃣ Выставить оценку")
		assert.NotContains(t, labels, "⛔ Незачёт")
	})
}

func TestLanguagePickerMarksCurrent(t *testing.T) {
	f := newFixture(t, registeredUser())

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(SettingsLanguage, nil))
	require.NoError(t, m.Show(context.Background()))

	view := f.sender.lastView()
	require.NotNil(t, view)

	labels := keyboardLabels(view)
	assert.Contains(t, labels, "• 🇷🇺 Русский •")
	assert.Contains(t, labels, "🇺🇸 English")
}

func TestShareLinkNotification(t *testing.T) {
	f := newFixture(t, registeredUser())
	f.containers.containers[7] = &models.ContainerWithOwner{Container: models.Container{
		ID:         7,
		OwnerID:    10,
		Name:       "Матан",
		InviteCode: "abcDEF1234",
	}}

	m := f.engine.Manager(10, 10)
	require.NoError(t, m.Start(ContainersView, map[string]any{"container_id": int64(7)}))

	err := f.engine.HandleCallback(context.Background(), m, "cb", callback(m, "share", ""))
	require.NoError(t, err)

	require.Len(t, f.sender.texts, 1)
	assert.Contains(t, f.sender.texts[0], "https://t.me/homework_test_bot?start=cjoin_abcDEF1234")
}
