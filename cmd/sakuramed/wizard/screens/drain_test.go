package screens

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdWait bounds how long drain waits on a command. Timers such as cursor
// blinks and toast expiries take longer and are dropped.
const cmdWait = 20 * time.Millisecond

// drain runs cmd and feeds every message it yields back into m, the way the
// bubbletea runtime does, until nothing is left to run.
func drain(m tea.Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for n := 0; len(queue) > 0 && n < 1000; n++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg, ok := runCmd(next)
		if !ok || msg == nil {
			continue
		}
		if cmds, ok := cmdList(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		var c tea.Cmd
		m, c = m.Update(msg)
		queue = append(queue, c)
	}
}

// send delivers each message to m and drains the resulting commands.
func send(m tea.Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		_, cmd := m.Update(msg)
		drain(m, cmd)
	}
}

func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(cmdWait):
		return nil, false
	}
}

// cmdList unpacks batch and sequence messages.
func cmdList(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, true
}
