package command

import (
	"fmt"
	"math"
	"strings"
)

// Settings is the configuration the interpreter mutates.
type Settings interface {
	SetSetpoint(v int) (int, error)
	SetIrrigationSeconds(sec int) (bool, error)
	SetLockoutSeconds(sec int) (bool, error)
}

// Interpreter executes key=value lines against Settings.
type Interpreter struct {
	settings Settings
}

func NewInterpreter(settings Settings) *Interpreter {
	return &Interpreter{
		settings: settings,
	}
}

// Execute applies one command line. It returns the confirmation to send
// back, or an empty string when the line had no effect.
func (i *Interpreter) Execute(line string) (string, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return "", nil
	}

	key = strings.ToLower(strings.TrimSpace(key))
	v := parseInt(value)

	switch key {
	case "set":
		applied, err := i.settings.SetSetpoint(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Setpoint = %d%%", applied), nil

	case "riego":
		applied, err := i.settings.SetIrrigationSeconds(v)
		if err != nil || !applied {
			return "", err
		}
		return fmt.Sprintf("Riego = %d s", v), nil

	case "bloqueo":
		applied, err := i.settings.SetLockoutSeconds(v)
		if err != nil || !applied {
			return "", err
		}
		return fmt.Sprintf("Bloqueo = %d s", v), nil
	}

	return "", nil
}

// parseInt reads an optionally signed run of leading digits. Text that
// does not start with a number yields 0. Magnitudes saturate at MaxInt32.
func parseInt(s string) int {
	s = strings.TrimLeft(s, " \t")

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}

	if negative {
		return -n
	}
	return n
}
