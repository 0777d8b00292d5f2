package domain

// TestSuite is one parsed fixture file
type TestSuite struct {
	SourcePath  string     // Path of the fixture file the suite was parsed from
	SharedInput []string   // Lines before the first test declaration
	Cases       []TestCase // Test cases in file order
}

// TestCase is one command with its expected output.
// Command never includes the program name; the executor adds it.
type TestCase struct {
	Command        string
	ExpectedOutput []string
}

// Commands returns the commands of all cases in file order
func (s *TestSuite) Commands() []string {
	commands := make([]string, 0, len(s.Cases))
	for _, c := range s.Cases {
		commands = append(commands, c.Command)
	}
	return commands
}
