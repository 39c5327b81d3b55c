package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkrylov/go-data-vault/internal/vault"
	"github.com/dkrylov/go-data-vault/models"
)

type browserModel struct {
	ctx   context.Context
	vault vault.Vault

	items   []string
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	errMsg  string

	detail      bool
	detailKey   string
	detailValue string
	detailMeta  map[string]string

	confirmDelete bool

	quitByUser bool
}

func newBrowserModel(ctx context.Context, v vault.Vault) browserModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return browserModel{
		ctx:     ctx,
		vault:   v,
		loading: true,
		spinner: s,
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadKeys(), m.spinner.Tick)
}

func (m browserModel) current() (string, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return "", false
	}
	return m.items[m.idx], true
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case keysLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.keys
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case entryLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("read %s: %v", msg.key, msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.detail = true
		m.detailKey = msg.key
		m.detailValue = msg.value
		m.detailMeta = msg.meta
		return m, nil

	case deleteDoneMsg:
		m.confirmDelete = false
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "entry deleted"
		m.detail = false
		m.loading = true
		return m, tea.Batch(m.cmdLoadKeys(), m.cmdClearStatus())

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("copy failed: %v", msg.err)
			return m, nil
		}
		m.status = "copied to clipboard"
		return m, m.cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		switch {
		case key.Matches(msg, keys.yes):
			return m, m.cmdDelete(m.detailKey)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirmDelete = false
			return m, nil
		}
		return m, nil
	}

	if m.detail {
		switch {
		case key.Matches(msg, keys.esc):
			m.detail = false
			m.detailValue = ""
			return m, nil
		case key.Matches(msg, keys.copy):
			return m, cmdCopy(m.detailValue)
		case key.Matches(msg, keys.delete):
			m.confirmDelete = true
			return m, nil
		case key.Matches(msg, keys.quit):
			m.quitByUser = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.enter):
		if current, ok := m.current(); ok {
			m.loading = true
			return m, m.cmdLoadEntry(current)
		}
	case key.Matches(msg, keys.refresh):
		m.loading = true
		return m, m.cmdLoadKeys()
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}

	return m, nil
}

func (m browserModel) View() string {
	if m.detail {
		return appStyle.Render(m.detailView())
	}
	return appStyle.Render(m.listView())
}

func (m browserModel) listView() string {
	var b strings.Builder

	header := titleStyle.Render("go-data-vault") + "  " + metaStyle.Render(m.vault.Principal().DID())
	if m.loading {
		header += "  " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString("loading...\n")
	case len(m.items) == 0:
		b.WriteString("empty vault\n")
	default:
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = cursorStyle.Render("> ")
			}
			b.WriteString(cursor + item + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+m.errMsg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter open  r refresh  q quit"))
	return b.String()
}

func (m browserModel) detailView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.detailKey) + "\n\n")

	if m.confirmDelete {
		b.WriteString(fmt.Sprintf("delete %q? (y/n)\n", m.detailKey))
		return b.String()
	}

	b.WriteString(m.detailValue + "\n\n")

	metaKeys := make([]string, 0, len(m.detailMeta))
	for k := range m.detailMeta {
		metaKeys = append(metaKeys, k)
	}
	sort.Strings(metaKeys)
	for _, k := range metaKeys {
		b.WriteString(metaStyle.Render(fmt.Sprintf("%s: %s", k, m.detailMeta[k])) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+m.errMsg) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("c copy  d delete  esc back  q quit"))
	return b.String()
}

func (m browserModel) cmdLoadKeys() tea.Cmd {
	return func() tea.Msg {
		keys, err := m.vault.List(m.ctx)
		return keysLoadedMsg{keys: keys, err: err}
	}
}

func (m browserModel) cmdLoadEntry(entryKey string) tea.Cmd {
	return func() tea.Msg {
		meta, err := m.vault.Head(m.ctx, entryKey)
		if err != nil {
			return entryLoadedMsg{key: entryKey, err: err}
		}

		value, err := renderEntry(m.ctx, m.vault, entryKey, meta[models.HeaderContentType])
		return entryLoadedMsg{key: entryKey, value: value, meta: meta, err: err}
	}
}

func (m browserModel) cmdDelete(entryKey string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: m.vault.Delete(m.ctx, entryKey)}
	}
}

func cmdCopy(value string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(value)}
	}
}

func (m browserModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// renderEntry decrypts the entry and renders it for display according to the
// content type recorded in the envelope.
func renderEntry(ctx context.Context, v vault.Vault, entryKey, contentType string) (string, error) {
	switch contentType {
	case models.ContentTypeBytes:
		var raw []byte
		if err := v.Get(ctx, entryKey, &raw); err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		var value any
		if err := v.Get(ctx, entryKey, &value); err != nil {
			return "", err
		}
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", value), nil
		}
		return string(pretty), nil
	}
}
