package source

type FileDef struct {
	Path     string
	Commands []Command
}
