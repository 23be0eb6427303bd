// Package locale — каталог сообщений бота. Значения разрешаются в момент
// сборки сообщения, никаких ленивых строк.
package locale

import "fmt"

const (
	Default = "ru"
)

// Locale — поддерживаемый язык интерфейса.
type Locale struct {
	Code string
	Flag string
	Name string
}

var Locales = []Locale{
	{Code: "en", Flag: "🇺🇸", Name: "English"},
	{Code: "ru", Flag: "🇷🇺", Name: "Русский"},
}

// T возвращает перевод ключа. Отсутствующий перевод берётся из русского
// каталога, отсутствующий ключ возвращается как есть.
func T(lang, key string) string {
	if cat, ok := catalogs[lang]; ok {
		if msg, ok := cat[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[Default][key]; ok {
		return msg
	}
	return key
}

// Tf — перевод с подстановкой аргументов fmt.
func Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

var catalogs = map[string]map[string]string{
	"ru": {
		"common.back":          "‹ Назад",
		"common.cancel":        "‹ Отмена",
		"common.home":          "🏠 Домой",
		"common.skip":          "Пропустить",
		"common.invalid_input": "Неверный ввод. Попробуй ещё раз.",
		"common.error_restart": "Произошла ошибка. Пожалуйста, нажми /start",

		"register.prompt":      "Добро пожаловать в Ясяпобеда.рф!\n\nВведите ваше ФИО:",
		"register.invalid_fio": "Введите корректное ФИО.",
		"register.done":        "🎉 Вы зарегистрировались!",

		"main.greeting":      "Привет, %s!\n\n<a href='%s'>Открыть макет в Figma</a>",
		"main.new_container": "➕ Новый контейнер",
		"main.containers":    "📦 Контейнеры",

		"settings.title":       "⚙️ Настройки",
		"settings.change_lang": "🏳️ Изменить язык",
		"settings.choose_lang": "🏳️ Выбери язык:",

		"create.name_prompt":        "Создаём новый контейнер.\n\nВведи название:",
		"create.name_taken":         "Это имя уже занято. Попробуй добавить номер группы, дату или год обучения.",
		"create.description_prompt": "Введи описание задания:",
		"create.deadline_prompt":    "📅 Выбери срок задания. Дедлайн наступит в 23:59 МСК в этот день:",
		"create.past_deadline":      "Нельзя выбирать дату в прошлом. Попробуй ещё раз.",
		"create.confirm":            "Всё готово! Нажми на кнопку, чтобы завершить создание.",
		"create.submit":             "🔥 Создать контейнер",

		"containers.title":           "📦 <b>Доступные контейнеры</b>",
		"containers.view_title":      "📦 <b>Контейнер %s</b> › Просмотр",
		"containers.archived":        "🔒 Архивирован",
		"containers.deadline":        "Дедлайн <b>%s 23:59 МСК</b>",
		"containers.submitted":       "✅ Отправлено решение под ID <code>%d</code>",
		"containers.upload":          "➕ Загрузить решение",
		"containers.solutions":       "📬 Решения",
		"containers.share":           "🔗 Поделиться ссылкой",
		"containers.archive":         "🔒 Архивировать",
		"containers.share_text":      "Присоединиться к контейнеру %s можно по ссылке:\n\n%s",
		"containers.archive_confirm": "⚠️ Ты хочешь архивировать контейнер <b>%s</b>. Он будет скрыт у студентов.\n\nТы уверен? Это действие нельзя отменить.",
		"containers.archive_yes":     "Да, я уверен",
		"containers.add_homework":    "📝 Отправь решение задания текстом или файлом до %d МБ.",

		"join.ok":        "Ты присоединился к контейнеру %s!",
		"join.already":   "Ты уже находишься в этом контейнере.",
		"join.not_found": "Контейнер не найден.",

		"submit.too_big":    "Размер файла должен быть не больше %d МБ.",
		"submit.bad_name":   "Неверное имя файла.",
		"submit.processing": "Обработка...\n\nЭто займет до 30 секунд.",
		"submit.done":       "Отправлено! ID решения — <code>%d</code>",
		"submit.failed":     "Не получилось сохранить решение. Попробуй ещё раз позже.",

		"homeworks.title":          "📦 <b>Доступные задания</b>",
		"homeworks.download_all":   "📥 Скачать файлы",
		"homeworks.download_table": "#️⃣ Скачать таблицу",
		"homeworks.exporting":      "Выгружаем решения. Это займёт некоторое время",
		"homeworks.export_done":    "Готово: %d из %d файлов.",
		"homeworks.export_failed":  "Не получилось выгрузить решения. Попробуй ещё раз позже.",
		"homeworks.view_title":     "📦 <b>Контейнер %s › Решение %d</b>\nОтправил %s в %s",
		"homeworks.failed":         "⛔ <b>Выставлен незачёт</b>",
		"homeworks.marked":         "#️⃣ <b>Выставлена оценка %d</b>",
		"homeworks.set_mark":       "#️⃣ Выставить оценку",
		"homeworks.mark_prompt":    "#️⃣ Введи оценку целым числом:",
		"homeworks.mark_invalid":   "Оценка должна быть целым неотрицательным числом.",
		"homeworks.fail_btn":       "⛔ Незачёт",

		"xlsx.id":    "ID",
		"xlsx.time":  "Время отправки",
		"xlsx.fio":   "ФИО",
		"xlsx.file":  "Имя файла",
		"xlsx.grade": "Оценка",
		"xlsx.fail":  "Незачёт",
	},
	"en": {
		"common.back":          "‹ Back",
		"common.cancel":        "‹ Cancel",
		"common.home":          "🏠 Home",
		"common.skip":          "Skip",
		"common.invalid_input": "Invalid input. Try again.",
		"common.error_restart": "Something went wrong. Please press /start",

		"register.prompt":      "Welcome to Yasyapobeda!\n\nEnter your full name:",
		"register.invalid_fio": "Enter a valid full name.",
		"register.done":        "🎉 You are registered!",

		"main.greeting":      "Hi, %s!\n\n<a href='%s'>Open the Figma mockup</a>",
		"main.new_container": "➕ New container",
		"main.containers":    "📦 Containers",

		"settings.title":       "⚙️ Settings",
		"settings.change_lang": "🏳️ Change language",
		"settings.choose_lang": "🏳️ Choose a language:",

		"create.name_prompt":        "Creating a new container.\n\nEnter a name:",
		"create.name_taken":         "This name is taken. Try adding a group number, date or study year.",
		"create.description_prompt": "Enter the assignment description:",
		"create.deadline_prompt":    "📅 Pick the due date. The deadline is 23:59 MSK on that day:",
		"create.past_deadline":      "You cannot pick a date in the past. Try again.",
		"create.confirm":            "All set! Press the button to finish.",
		"create.submit":             "🔥 Create container",

		"containers.title":           "📦 <b>Available containers</b>",
		"containers.view_title":      "📦 <b>Container %s</b> › View",
		"containers.archived":        "🔒 Archived",
		"containers.deadline":        "Deadline <b>%s 23:59 MSK</b>",
		"containers.submitted":       "✅ Solution submitted with ID <code>%d</code>",
		"containers.upload":          "➕ Upload solution",
		"containers.solutions":       "📬 Solutions",
		"containers.share":           "🔗 Share link",
		"containers.archive":         "🔒 Archive",
		"containers.share_text":      "Join container %s via this link:\n\n%s",
		"containers.archive_confirm": "⚠️ You are about to archive container <b>%s</b>. Students will no longer see it.\n\nAre you sure? This cannot be undone.",
		"containers.archive_yes":     "Yes, I am sure",
		"containers.add_homework":    "📝 Send your solution as text or a file up to %d MB.",

		"join.ok":        "You joined container %s!",
		"join.already":   "You are already in this container.",
		"join.not_found": "Container not found.",

		"submit.too_big":    "The file must be at most %d MB.",
		"submit.bad_name":   "Invalid file name.",
		"submit.processing": "Processing...\n\nThis takes up to 30 seconds.",
		"submit.done":       "Sent! Solution ID — <code>%d</code>",
		"submit.failed":     "Could not save the solution. Try again later.",

		"homeworks.title":          "📦 <b>Available solutions</b>",
		"homeworks.download_all":   "📥 Download files",
		"homeworks.download_table": "#️⃣ Download table",
		"homeworks.exporting":      "Exporting solutions. This takes a while",
		"homeworks.export_done":    "Done: %d of %d files.",
		"homeworks.export_failed":  "Could not export the solutions. Try again later.",
		"homeworks.view_title":     "📦 <b>Container %s › Solution %d</b>\nSubmitted by %s at %s",
		"homeworks.failed":         "⛔ <b>No credit</b>",
		"homeworks.marked":         "#️⃣ <b>Grade: %d</b>",
		"homeworks.set_mark":       "#️⃣ Set a grade",
		"homeworks.mark_prompt":    "#️⃣ Enter the grade as an integer:",
		"homeworks.mark_invalid":   "The grade must be a non-negative integer.",
		"homeworks.fail_btn":       "⛔ No credit",

		"xlsx.id":    "ID",
		"xlsx.time":  "Submitted at",
		"xlsx.fio":   "Full name",
		"xlsx.file":  "File name",
		"xlsx.grade": "Grade",
		"xlsx.fail":  "No credit",
	},
}
