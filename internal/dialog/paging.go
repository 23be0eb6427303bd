package dialog

import "strconv"

const pageDataKey = "_page"

// DefaultPageSize — высота прокручиваемых списков.
const DefaultPageSize = 10

// Page возвращает текущую страницу списка текущего контекста.
func (m *Manager) Page() int {
	f := m.session.Top()
	if f == nil {
		return 0
	}
	raw, ok := f.Data[pageDataKey].(string)
	if !ok {
		return 0
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// Paginate вырезает страницу из списка и нормализует её номер.
func Paginate[T any](items []T, page, perPage int) (pageItems []T, current, totalPages int) {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	totalPages = (len(items) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * perPage
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}

// PagerRow строит ряд листания. При единственной странице ряда нет.
func PagerRow(page, totalPages int) []Button {
	if totalPages <= 1 {
		return nil
	}

	row := make([]Button, 0, 3)
	if page > 0 {
		row = append(row, BtnArg("‹", OpPage, strconv.Itoa(page-1)))
	} else {
		row = append(row, Btn(" ", OpNoop))
	}
	row = append(row, Btn(strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages), OpNoop))
	if page < totalPages-1 {
		row = append(row, BtnArg("›", OpPage, strconv.Itoa(page+1)))
	} else {
		row = append(row, Btn(" ", OpNoop))
	}
	return row
}
