package dialog

// View — модель окна: текст, клавиатура и, опционально, вложенный документ.
// Кнопки несут имя операции и аргумент, итоговые callback-данные собирает
// движок при отрисовке.
type View struct {
	Text              string
	Buttons           [][]Button
	DocumentFileID    string
	DisableWebPreview bool
}

type Button struct {
	Label string
	Op    string
	Arg   string
	URL   string
}

// Btn — обычная кнопка с операцией.
func Btn(label, op string) Button {
	return Button{Label: label, Op: op}
}

// BtnArg — кнопка с операцией и аргументом.
func BtnArg(label, op, arg string) Button {
	return Button{Label: label, Op: op, Arg: arg}
}

// Row собирает кнопки в один ряд.
func Row(buttons ...Button) []Button {
	return buttons
}

// AddRow добавляет ряд, пропуская пустой (удобно для кнопок под условием).
func (v *View) AddRow(buttons ...Button) {
	if len(buttons) == 0 {
		return
	}
	v.Buttons = append(v.Buttons, buttons)
}

// RenderedView — окно с уже собранными callback-данными, уходит в транспорт.
type RenderedView struct {
	Text              string
	Keyboard          [][]RenderedButton
	DocumentFileID    string
	DisableWebPreview bool
}

type RenderedButton struct {
	Label string
	Data  string
	URL   string
}

// IncomingMessage — входящее сообщение, очищенное от транспортных деталей.
type IncomingMessage struct {
	Text     string
	Document *IncomingDocument
}

type IncomingDocument struct {
	FileID   string
	FileName string
	FileSize int64
}
