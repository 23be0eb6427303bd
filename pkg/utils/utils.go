package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const inviteAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCode генерирует случайный код приглашения из 10 букв и цифр.
func InviteCode() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = inviteAlphabet[rand.Intn(len(inviteAlphabet))]
	}
	return string(b)
}

// Surname возвращает первую часть ФИО (фамилию).
func Surname(fio string) string {
	parts := strings.Fields(fio)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// FirstName возвращает имя (вторую часть ФИО), если оно есть.
func FirstName(fio string) string {
	parts := strings.Fields(fio)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ShortFIO сокращает ФИО до фамилии с инициалами: "Иванов Иван Иванович" -> "Иванов И. И.".
func ShortFIO(fio string) string {
	parts := strings.Fields(fio)
	if len(parts) == 0 {
		return ""
	}
	short := parts[0]
	for _, p := range parts[1:] {
		short += " " + string([]rune(p)[:1]) + "."
	}
	return short
}

var (
	labelStripRe    = regexp.MustCompile(`[^a-zA-Z0-9\s_\-]`)
	labelCollapseRe = regexp.MustCompile(`[\s\-]+`)
)

// SanitizeLabel превращает имя файла в метку решения: убирает всё, кроме
// латиницы, цифр и подчёркиваний, а пробелы и дефисы схлопывает в один дефис.
func SanitizeLabel(name string) string {
	stripped := labelStripRe.ReplaceAllString(name, "")
	collapsed := labelCollapseRe.ReplaceAllString(strings.TrimSpace(stripped), "-")
	return strings.Trim(collapsed, "-")
}

// SubmissionName собирает отображаемое имя решения:
// <фамилия>_<день_месяц>_<метка>.<расширение>.
func SubmissionName(fio string, at time.Time, label, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", Surname(fio), at.Format("02_01"), label, ext)
}

// SplitFileName отделяет расширение от имени файла. Третье значение false,
// если расширения нет.
func SplitFileName(fileName string) (base, ext string, ok bool) {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 || idx == len(fileName)-1 {
		return fileName, "", false
	}
	return fileName[:idx], strings.ToLower(fileName[idx+1:]), true
}

// EscapeHTML экранирует текст для HTML-разметки Telegram.
func EscapeHTML(text string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(text)
}
