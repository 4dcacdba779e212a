package app

import "path/filepath"

// Config описывает расположение файлов данных сессии.
type Config struct {
	// DataDir — каталог с файлами данных.
	DataDir string
	// ProductsFile, CustomersFile — табличные CSV-хранилища каталога.
	ProductsFile  string
	CustomersFile string
	// OrdersFile — документное JSON-хранилище книги заказов.
	OrdersFile string
}

// DefaultConfig возвращает имена файлов по умолчанию в текущем каталоге.
func DefaultConfig() Config {
	return Config{
		DataDir:       ".",
		ProductsFile:  "products.csv",
		CustomersFile: "customers.csv",
		OrdersFile:    "orders.json",
	}
}

// ProductsPath возвращает полный путь к файлу товаров.
func (c Config) ProductsPath() string { return filepath.Join(c.DataDir, c.ProductsFile) }

// CustomersPath возвращает полный путь к файлу покупателей.
func (c Config) CustomersPath() string { return filepath.Join(c.DataDir, c.CustomersFile) }

// OrdersPath возвращает полный путь к файлу заказов.
func (c Config) OrdersPath() string { return filepath.Join(c.DataDir, c.OrdersFile) }
