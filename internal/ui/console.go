package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Console — терминальный слой: приглашения, цветные статусные строки и меню.
// Ядро получает от консоли проверенные примитивы и возвращает значения,
// которые консоль печатает; бизнес-логики здесь нет.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	closed bool

	success *color.Color
	failure *color.Color
	warning *color.Color
	accent  *color.Color
}

// NewConsole создаёт консоль поверх произвольных потоков ввода и вывода,
// что позволяет прогонять диалоги в тестах.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow),
		accent:  color.New(color.FgCyan, color.Bold),
	}
}

// Prompt печатает приглашение и возвращает строку без краевых пробелов.
// Пустая строка в диалогах обновления означает «оставить без изменений».
// Исчерпанный поток ввода помечает консоль закрытой, см. Closed.
func (c *Console) Prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		c.closed = true
		return ""
	}
	return strings.TrimSpace(line)
}

// Closed сообщает, что поток ввода исчерпан. Циклы меню обязаны проверять
// этот флаг после Prompt и завершаться, иначе пустой ответ неотличим от
// конца ввода.
func (c *Console) Closed() bool { return c.closed }

// PromptInt запрашивает целое число.
func (c *Console) PromptInt(label string) (int, error) {
	raw := c.Prompt(label)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// Menu печатает заголовок и нумерованные пункты меню.
func (c *Console) Menu(title string, entries [][2]string) {
	c.accent.Fprintf(c.out, "\n-- %s --\n", title)
	for _, entry := range entries {
		fmt.Fprintf(c.out, "%s. %s\n", entry[0], entry[1])
	}
}

// Println выводит обычную строку.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Printf выводит форматированную строку без перевода строки.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Successf печатает зелёную строку успеха.
func (c *Console) Successf(format string, args ...any) {
	c.success.Fprintf(c.out, "+ "+format+"\n", args...)
}

// Failuref печатает красную строку ошибки.
func (c *Console) Failuref(format string, args ...any) {
	c.failure.Fprintf(c.out, "x Error: "+format+"\n", args...)
}

// Warnf печатает жёлтое предупреждение.
func (c *Console) Warnf(format string, args ...any) {
	c.warning.Fprintf(c.out, "! "+format+"\n", args...)
}

// Titlef печатает акцентированный заголовок.
func (c *Console) Titlef(format string, args ...any) {
	c.accent.Fprintf(c.out, format+"\n", args...)
}
