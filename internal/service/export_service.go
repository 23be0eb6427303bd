package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/repository"
)

// Archive — результат выгрузки файлов контейнера. Downloaded может быть
// меньше Total: текстовые решения и недоступные файлы в архив не попадают.
type Archive struct {
	Name       string
	Data       []byte
	Total      int
	Downloaded int
}

type GradeTable struct {
	Name string
	Data []byte
}

type ExportService interface {
	BuildArchive(ctx context.Context, containerID int64) (*Archive, error)
	BuildGradeTable(ctx context.Context, containerID int64, lang string) (*GradeTable, error)
}

type exportService struct {
	homeworkRepo repository.HomeworkRepository
	relay        FileRelay
	location     *time.Location
	logger       zerolog.Logger
}

func NewExportService(homeworkRepo repository.HomeworkRepository, relay FileRelay, location *time.Location, logger zerolog.Logger) ExportService {
	return &exportService{
		homeworkRepo: homeworkRepo,
		relay:        relay,
		location:     location,
		logger:       logger,
	}
}

// BuildArchive скачивает файлы всех решений контейнера и упаковывает их в
// zip. Сбой скачивания отдельного файла не срывает выгрузку.
func (s *exportService) BuildArchive(ctx context.Context, containerID int64) (*Archive, error) {
	homeworks, err := s.homeworkRepo.ListByContainer(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list homeworks: %w", err)
	}

	var withFiles []models.HomeworkWithOwner
	for _, h := range homeworks {
		if h.FileID != "" {
			withFiles = append(withFiles, h)
		}
	}

	files := make([][]byte, len(withFiles))

	var wg sync.WaitGroup
	for i := range withFiles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			data, err := s.relay.DownloadFile(ctx, withFiles[i].FileID)
			if err != nil {
				s.logger.Warn().Err(err).
					Int64("homework_id", withFiles[i].ID).
					Msg("Failed to download homework file")
				return
			}
			files[i] = data
		}(i)
	}
	wg.Wait()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	downloaded := 0
	for i, h := range withFiles {
		if files[i] == nil {
			continue
		}

		// Порядковый префикс сохраняет порядок отправки и исключает
		// коллизии одинаковых имён.
		w, err := zw.Create(fmt.Sprintf("%04d-%s", h.ID, h.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to add file to archive: %w", err)
		}
		if _, err := w.Write(files[i]); err != nil {
			return nil, fmt.Errorf("failed to write file to archive: %w", err)
		}
		downloaded++
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	s.logger.Info().
		Int64("container_id", containerID).
		Int("total", len(withFiles)).
		Int("downloaded", downloaded).
		Msg("Archive built")

	return &Archive{
		Name:       fmt.Sprintf("container_%d_files.zip", containerID),
		Data:       buf.Bytes(),
		Total:      len(withFiles),
		Downloaded: downloaded,
	}, nil
}

// BuildGradeTable собирает xlsx-таблицу оценок контейнера.
func (s *exportService) BuildGradeTable(ctx context.Context, containerID int64, lang string) (*GradeTable, error) {
	homeworks, err := s.homeworkRepo.ListByContainer(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list homeworks: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	headers := []string{
		locale.T(lang, "xlsx.id"),
		locale.T(lang, "xlsx.time"),
		locale.T(lang, "xlsx.fio"),
		locale.T(lang, "xlsx.file"),
		locale.T(lang, "xlsx.grade"),
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	widths := make([]int, len(headers))
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		widths[col] = len([]rune(h))
	}

	for i, h := range homeworks {
		mark := ""
		if h.Mark != nil {
			if *h.Mark == models.MarkFail {
				mark = locale.T(lang, "xlsx.fail")
			} else {
				mark = fmt.Sprintf("%d", *h.Mark)
			}
		}

		values := []any{
			h.ID,
			h.CreatedAt.In(s.location).Format("02.01.2006 15:04:05"),
			h.OwnerFIO,
			h.Name,
			mark,
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
			if n := len([]rune(fmt.Sprintf("%v", v))); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, float64(w+2)); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	return &GradeTable{
		Name: fmt.Sprintf("container_%d_grades.xlsx", containerID),
		Data: buf.Bytes(),
	}, nil
}
