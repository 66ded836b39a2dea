package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует консольный ввод-вывод команд
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput возвращает введённую строку без пробелов по краям; io.EOF, когда ввод закончился
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// IsInteractive сообщает, подключён ли ввод к терминалу
	IsInteractive() bool
	Write(p []byte) (n int, err error)
}
