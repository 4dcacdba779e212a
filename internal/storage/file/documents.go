package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Documents — JSON-хранилище последовательности документов (заказы).
// Документы читаются и сохраняются как отображения; числа декодируются через
// json.Number, чтобы денежные значения не проходили через float64.
type Documents struct {
	path   string
	logger *log.Entry
}

// NewDocuments возвращает хранилище документов поверх файла path.
func NewDocuments(path string, logger *log.Entry) *Documents {
	if logger == nil {
		logger = log.New().WithField("component", "storage")
	}
	return &Documents{path: path, logger: logger}
}

// Path возвращает путь к файлу хранилища.
func (d *Documents) Path() string { return d.path }

// Load читает все документы. Отсутствующий или нечитаемый файл даёт пустой
// результат; повреждённый JSON — предупреждение и пустой результат.
func (d *Documents) Load() ([]map[string]any, error) {
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read documents %s: %w", d.path, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var docs []map[string]any
	if err := decoder.Decode(&docs); err != nil {
		d.logger.WithError(err).WithField("path", d.path).
			Warn("document store is empty or corrupt, starting with no documents")
		return nil, nil
	}
	return docs, nil
}

// Save полностью перезаписывает файл, сохраняя документы с отступами.
func (d *Documents) Save(docs []map[string]any) error {
	if docs == nil {
		docs = []map[string]any{}
	}
	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return fmt.Errorf("encode documents %s: %w", d.path, err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("write documents %s: %w", d.path, err)
	}
	return nil
}
