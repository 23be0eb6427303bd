package telegram

import "github.com/yasyapobeda/homework-bot/internal/dialog"

var (
	RegisterFIO  = dialog.State{Group: "register", Name: "fio"}
	RegisterDone = dialog.State{Group: "register", Name: "done"}

	MainIntro = dialog.State{Group: "main", Name: "intro"}

	SettingsIntro    = dialog.State{Group: "settings", Name: "intro"}
	SettingsLanguage = dialog.State{Group: "settings", Name: "language"}

	CreateName        = dialog.State{Group: "create", Name: "name"}
	CreateDescription = dialog.State{Group: "create", Name: "description"}
	CreateDeadline    = dialog.State{Group: "create", Name: "deadline"}
	CreateConfirm     = dialog.State{Group: "create", Name: "confirm"}

	ContainersIntro          = dialog.State{Group: "containers", Name: "intro"}
	ContainersView           = dialog.State{Group: "containers", Name: "view"}
	ContainersArchiveConfirm = dialog.State{Group: "containers", Name: "archive_confirm"}
	ContainersAddHomework    = dialog.State{Group: "containers", Name: "add_homework"}

	HomeworksIntro   = dialog.State{Group: "homeworks", Name: "intro"}
	HomeworksView    = dialog.State{Group: "homeworks", Name: "view"}
	HomeworksAddMark = dialog.State{Group: "homeworks", Name: "add_mark"}
)
