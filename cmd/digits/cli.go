package main

import (
	"fmt"
	"strconv"
	"strings"
)

type CommandArgs struct {
	commandName string
	params      map[string]string
}

// NewCommandArgs parses "command -key value -key=value -flag".
// A key followed by another key, or by nothing, is set to "true".
func NewCommandArgs(args []string) *CommandArgs {
	var cmdName = ""
	var flags = make(map[string]string)
	for i := 1; i < len(args); i++ {
		var arg = args[i]
		if isKey(arg) {
			var k = strings.TrimLeft(arg, "-")
			if eq := strings.Index(k, "="); eq >= 0 {
				flags[k[:eq]] = k[eq+1:]
			} else if i < len(args)-1 && !isKey(args[i+1]) {
				flags[k] = args[i+1]
				i++
			} else {
				flags[k] = "true"
			}
		} else if cmdName == "" {
			cmdName = arg
		}
	}
	return &CommandArgs{
		commandName: cmdName,
		params:      flags,
	}
}

// isKey reports whether arg names a parameter; negative numbers are values.
func isKey(arg string) bool {
	if !strings.HasPrefix(arg, "-") || len(arg) == 1 {
		return false
	}
	var _, err = strconv.ParseFloat(arg, 64)
	return err != nil
}

func (ca *CommandArgs) CommandName() string {
	return ca.commandName
}

func (ca *CommandArgs) GetString(name string, defaultVal string) string {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	return val
}

func (ca *CommandArgs) GetInt(name string, defaultVal int) int {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	var v, err = strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return v
}

func (ca *CommandArgs) GetInt64(name string, defaultVal int64) int64 {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	var v, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func (ca *CommandArgs) GetFloat(name string, defaultVal float64) float64 {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	var v, err = strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func (ca *CommandArgs) GetBool(name string, defaultVal bool) bool {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	var v, err = strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return v
}

type Cli struct {
	args     *CommandArgs
	commands map[string]func() error
}

func NewCli(args []string) *Cli {
	return &Cli{
		args:     NewCommandArgs(args),
		commands: make(map[string]func() error),
	}
}

func (cli *Cli) Params() *CommandArgs {
	return cli.args
}

func (cli *Cli) AddCommand(name string, handler func() error) {
	cli.commands[name] = handler
}

// Execute runs the command named on the command line, or defaultCommand.
func (cli *Cli) Execute(defaultCommand string) error {
	var name = cli.args.CommandName()
	if name == "" {
		name = defaultCommand
	}
	handler, found := cli.commands[name]
	if !found {
		return fmt.Errorf("command not found %v", name)
	}
	return handler()
}
