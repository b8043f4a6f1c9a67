package source

// Memory is an in-memory source. Pages marked with Fail report a read
// failure.
type Memory struct {
	pages  []string
	failed map[int]bool
}

// NewMemory returns a source whose page n holds texts[n-1].
func NewMemory(texts ...string) *Memory {
	return &Memory{pages: append([]string(nil), texts...), failed: make(map[int]bool)}
}

// Fail makes page n unreadable.
func (m *Memory) Fail(n int) *Memory {
	m.failed[n] = true
	return m
}

func (m *Memory) PageCount() (int, error) { return len(m.pages), nil }

func (m *Memory) PageText(n int) (string, error) {
	if err := checkPage(n, len(m.pages)); err != nil {
		return "", err
	}
	if m.failed[n] {
		return "", pageError(n, nil)
	}
	return m.pages[n-1], nil
}

func (m *Memory) Close() error { return nil }
