package dialog

import (
	"time"
)

const calendarPageKey = "_cal_page"

// OpCalendarDay — операция выбора дня; аргумент — дата в формате 2006-01-02.
// Окно с календарём регистрирует обработчик на эту операцию, листание
// месяцев движок обрабатывает сам.
const OpCalendarDay = "cal_day"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// CalendarPage возвращает показываемый месяц текущего контекста.
func (m *Manager) CalendarPage(now time.Time) time.Time {
	f := m.session.Top()
	if f != nil {
		if raw, ok := f.Data[calendarPageKey].(string); ok {
			if page, err := time.ParseInLocation("2006-01", raw, now.Location()); err == nil {
				return page
			}
		}
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// CalendarKeyboard строит клавиатуру месяца: заголовок с листанием и сетку
// дней по неделям (недели начинаются с понедельника).
func CalendarKeyboard(page time.Time, now time.Time) [][]Button {
	first := time.Date(page.Year(), page.Month(), 1, 0, 0, 0, 0, page.Location())
	next := first.AddDate(0, 1, 0)
	prev := first.AddDate(0, -1, 0)
	daysInMonth := next.Add(-24 * time.Hour).Day()

	header := Row(
		BtnArg("‹", OpCalendarPage, prev.Format("2006-01")),
		Btn(monthNames[first.Month()-1]+" "+first.Format("2006"), OpNoop),
		BtnArg("›", OpCalendarPage, next.Format("2006-01")),
	)

	rows := [][]Button{header}

	// Сдвиг первого дня: понедельник — 0.
	offset := (int(first.Weekday()) + 6) % 7

	week := make([]Button, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, Btn(" ", OpNoop))
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location())
		week = append(week, BtnArg(date.Format("2"), OpCalendarDay, date.Format("2006-01-02")))
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]Button, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Btn(" ", OpNoop))
		}
		rows = append(rows, week)
	}

	return rows
}
