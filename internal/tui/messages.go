package tui

type keysLoadedMsg struct {
	keys []string
	err  error
}

type entryLoadedMsg struct {
	key   string
	value string
	meta  map[string]string
	err   error
}

type deleteDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
