package source

// Package is a set of script files checked together, in the order given.
type Package struct {
	Name  string
	Files []*FileDef
}

func NewPackage(name string) *Package {
	return &Package{Name: name}
}

func (p *Package) AddFile(file *FileDef) {
	p.Files = append(p.Files, file)
}

// Commands concatenates the files' commands.
func (p *Package) Commands() []Command {
	var cmds []Command
	for _, f := range p.Files {
		cmds = append(cmds, f.Commands...)
	}
	return cmds
}

// Locate returns the file holding the i-th command of Commands.
func (p *Package) Locate(i int) *FileDef {
	for _, f := range p.Files {
		if i < len(f.Commands) {
			return f
		}
		i -= len(f.Commands)
	}
	return nil
}
