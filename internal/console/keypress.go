package console

import (
	"os"

	"golang.org/x/term"
)

// WaitForKey ждет нажатия одной клавиши. Если in не является терминалом,
// функция возвращается сразу, чтобы не блокировать запуск из скриптов.
func WaitForKey(in *os.File) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, state)

	buf := make([]byte, 1)
	_, err = in.Read(buf)
	return err
}
