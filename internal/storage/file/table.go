package file

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Table — CSV-хранилище однородных табличных записей (товары, покупатели).
// Чистый ввод-вывод без бизнес-логики: записи поднимаются и сохраняются как
// отображения «имя поля → значение» со стабильной проекцией полей.
type Table struct {
	path   string
	fields []string
	logger *log.Entry
}

// NewTable возвращает таблицу поверх файла path с фиксированным набором полей.
func NewTable(path string, fields []string, logger *log.Entry) *Table {
	if logger == nil {
		logger = log.New().WithField("component", "storage")
	}
	return &Table{path: path, fields: fields, logger: logger}
}

// Path возвращает путь к файлу таблицы.
func (t *Table) Path() string { return t.path }

// Load читает все записи таблицы. Отсутствующий файл инициализируется одной
// строкой заголовка и даёт пустой результат; повреждённый файл трактуется как
// пустой с предупреждением, а не как фатальная ошибка.
func (t *Table) Load() ([]map[string]string, error) {
	raw, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := t.Save(nil); err != nil {
			return nil, fmt.Errorf("init table %s: %w", t.path, err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", t.path, err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.logger.WithError(err).WithField("path", t.path).
			Warn("table file is corrupt, treating as empty")
		return nil, nil
	}

	rows := make([]map[string]string, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			// Строка заголовка.
			continue
		}
		if len(rec) != len(t.fields) {
			t.logger.WithFields(log.Fields{"path": t.path, "line": i + 1}).
				Warn("skipping malformed table row")
			continue
		}
		row := make(map[string]string, len(t.fields))
		for j, field := range t.fields {
			row[field] = rec[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Save полностью перезаписывает файл: заголовок, затем записи в порядке среза.
func (t *Table) Save(rows []map[string]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(t.fields); err != nil {
		return fmt.Errorf("encode table header %s: %w", t.path, err)
	}
	for _, row := range rows {
		rec := make([]string, len(t.fields))
		for j, field := range t.fields {
			rec[j] = row[field]
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("encode table row %s: %w", t.path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode table %s: %w", t.path, err)
	}
	if err := os.WriteFile(t.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write table %s: %w", t.path, err)
	}
	return nil
}
