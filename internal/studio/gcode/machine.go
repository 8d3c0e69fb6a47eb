package gcode

import "fmt"

// ============================================================
// Machine Description
// ============================================================

// Machine describes device capability plus the compiled control
// sequences. It is built once per export and shared across every
// drawing in the batch.
type Machine struct {
	SupportsCircularInterpolation bool

	ToolOn  []Block
	ToolOff []Block
	Begin   []Block
	End     []Block
}

// NewMachine компилирует опциональные фрагменты. Пустая строка —
// последовательность не задана; ошибка компиляции фатальна.
func NewMachine(supportsCircular bool, toolOn, toolOff, begin, end string) (Machine, error) {
	m := Machine{SupportsCircularInterpolation: supportsCircular}

	var err error
	if m.ToolOn, err = optionalSnippet(toolOn); err != nil {
		return Machine{}, fmt.Errorf("tool-on sequence: %w", err)
	}
	if m.ToolOff, err = optionalSnippet(toolOff); err != nil {
		return Machine{}, fmt.Errorf("tool-off sequence: %w", err)
	}
	if m.Begin, err = optionalSnippet(begin); err != nil {
		return Machine{}, fmt.Errorf("begin sequence: %w", err)
	}
	if m.End, err = optionalSnippet(end); err != nil {
		return Machine{}, fmt.Errorf("end sequence: %w", err)
	}

	return m, nil
}

func optionalSnippet(text string) ([]Block, error) {
	if text == "" {
		return nil, nil
	}
	return ParseSnippet(text)
}
