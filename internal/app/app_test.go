package app_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/ui"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)
	return logger.WithField("component", "test")
}

func testConfig(t *testing.T) app.Config {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestSession_StatePersistsAcrossSessions(t *testing.T) {
	cfg := testConfig(t)

	first, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)

	_, err = first.Catalog.AddProduct("Arroz", decimal.NewFromInt(12000), 15)
	require.NoError(t, err)
	_, err = first.Catalog.AddCustomer("Cristian Rodriguez", "cristian@example.com")
	require.NoError(t, err)

	order, err := first.Engine.CreateOrder(1, []domain.LineRequest{{ProductID: "1", Quantity: "2"}})
	require.NoError(t, err)
	require.Equal(t, 1, order.ID)

	// Новая сессия над теми же файлами видит зафиксированное состояние.
	second, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)

	p, ok := second.Catalog.Product(1)
	require.True(t, ok)
	require.Equal(t, 13, p.Stock)
	require.Equal(t, 1, second.Book.Len())
	require.True(t, second.Reports.TotalSales().Equal(decimal.NewFromInt(24000)))
	require.NotEqual(t, first.ID, second.ID)
}

func TestRun_ExitsOnZero(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader("0\n"), &out)

	require.NoError(t, app.Run(cfg, console, testLogger()))
	require.Contains(t, out.String(), "Bye!")
}

func TestRun_ExitsWhenInputCloses(t *testing.T) {
	// Исчерпанный ввод завершает цикл меню, а не крутит его вхолостую.
	cfg := testConfig(t)
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader(""), &out)

	require.NoError(t, app.Run(cfg, console, testLogger()))
	require.Contains(t, out.String(), "Bye!")
}

func TestRun_ExitsWhenInputClosesInSubmenu(t *testing.T) {
	// Конец ввода внутри подменю товаров тоже ведёт к выходу.
	cfg := testConfig(t)
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader("1\n"), &out)

	require.NoError(t, app.Run(cfg, console, testLogger()))
	require.Contains(t, out.String(), "Bye!")
}

func TestRun_ProductCreateDialog(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	// Меню товаров -> создать -> назад -> выход.
	script := strings.Join([]string{"1", "1", "Pan", "500", "15", "0", "0"}, "\n") + "\n"
	console := ui.NewConsole(strings.NewReader(script), &out)

	require.NoError(t, app.Run(cfg, console, testLogger()))
	require.Contains(t, out.String(), `product "Pan" added with ID 1`)

	session, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)
	p, ok := session.Catalog.Product(1)
	require.True(t, ok)
	require.Equal(t, "Pan", p.Name)
	require.Equal(t, 15, p.Stock)
}

func TestRun_OrderDialogRejectionKeepsStock(t *testing.T) {
	cfg := testConfig(t)

	seed, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)
	_, err = seed.Catalog.AddProduct("Arroz", decimal.NewFromInt(12000), 15)
	require.NoError(t, err)
	_, err = seed.Catalog.AddCustomer("Mariana Zapata", "mariana@example.com")
	require.NoError(t, err)

	var out bytes.Buffer
	// Создание заказа на 20 единиц при остатке 15: отказ без списания.
	script := strings.Join([]string{"3", "1", "1", "20", "done", "0"}, "\n") + "\n"
	console := ui.NewConsole(strings.NewReader(script), &out)

	require.NoError(t, app.Run(cfg, console, testLogger()))
	require.Contains(t, out.String(), "order rejected")

	check, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)
	p, ok := check.Catalog.Product(1)
	require.True(t, ok)
	require.Equal(t, 15, p.Stock)
	require.Equal(t, 0, check.Book.Len())
}

func TestRun_OrderDialogWarnsOnPersistFailure(t *testing.T) {
	cfg := testConfig(t)

	session, err := app.NewSession(cfg, testLogger())
	require.NoError(t, err)
	_, err = session.Catalog.AddProduct("Arroz", decimal.NewFromInt(12000), 15)
	require.NoError(t, err)
	_, err = session.Catalog.AddCustomer("Mariana Zapata", "mariana@example.com")
	require.NoError(t, err)

	// Каталог на месте файла заказов: заказ проходит, запись на диск — нет.
	require.NoError(t, os.Mkdir(cfg.OrdersPath(), 0o755))

	var out bytes.Buffer
	script := strings.Join([]string{"3", "1", "1", "2", "done", "0"}, "\n") + "\n"
	console := ui.NewConsole(strings.NewReader(script), &out)

	require.NoError(t, session.Run(console))
	require.Contains(t, out.String(), "writing to disk failed")
	require.Contains(t, out.String(), "order 1 created")
	require.Equal(t, 1, session.Book.Len())
}
