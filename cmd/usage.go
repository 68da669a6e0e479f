package cmd

import (
	"EnvKit/internal/console"
	"EnvKit/internal/constants"
	"EnvKit/internal/version"
	"fmt"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(target string) {
	fmt.Println(console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] [{{_UsageCommand_}}<Command>{{|-|}}] ...", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr(fmt.Sprintf("Read, edit, check, and load '{{_UsageFile_}}%s{{|-|}}' files.", constants.EnvFileName))
		printStr("")
		printStr("You may include multiple commands on the command-line, and they will be executed in")
		printStr("the order given, only stopping on an error. Any flags included only apply to the")
		printStr("following command, and get reset before the next command.")
		printStr("")
		printStr(fmt.Sprintf("Commands operate on '{{_UsageFile_}}%s{{|-|}}' in the current directory unless a", constants.EnvFileName))
		printStr("'{{_UsageCommand_}}--file{{|-|}}' flag or a configured default says otherwise.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""

	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-f", "--file") {
		printStr("{{_UsageCommand_}}-f --file{{|-|}} {{_UsageFile_}}<path>{{|-|}}")
		printStr("	Operate on the specified env file instead of the default")
	}
	if match("-o", "--override") {
		printStr("{{_UsageCommand_}}-o --override{{|-|}}")
		printStr("	When loading, replace variables already present in the environment")
	}
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}

	if showAll {
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	if match("-g", "--get", "--get=") {
		printStr("{{_UsageCommand_}}-g --get{{|-|}} {{_UsageVar_}}<var>{{|-|}} [{{_UsageVar_}}<var>{{|-|}} ...]")
		printStr("{{_UsageCommand_}}--get={{|-|}}{{_UsageVar_}}<var>{{|-|}}")
		printStr("	Get the value of a {{_UsageVar_}}<var>{{|-|}}iable")
	}
	if match("--get-line", "--get-line=") {
		printStr("{{_UsageCommand_}}--get-line{{|-|}} {{_UsageVar_}}<var>{{|-|}} [{{_UsageVar_}}<var>{{|-|}} ...]")
		printStr("{{_UsageCommand_}}--get-line={{|-|}}{{_UsageVar_}}<var>{{|-|}}")
		printStr("	Get the line of a {{_UsageVar_}}<var>{{|-|}}iable")
	}
	if match("--get-literal", "--get-literal=") {
		printStr("{{_UsageCommand_}}--get-literal{{|-|}} {{_UsageVar_}}<var>{{|-|}} [{{_UsageVar_}}<var>{{|-|}} ...]")
		printStr("{{_UsageCommand_}}--get-literal={{|-|}}{{_UsageVar_}}<var>{{|-|}}")
		printStr("	Get the literal value (including quotes) of a {{_UsageVar_}}<var>{{|-|}}iable")
	}
	if match("-s", "--set", "--set=") {
		printStr("{{_UsageCommand_}}-s --set{{|-|}} {{_UsageVar_}}<var>=<val>{{|-|}} [{{_UsageVar_}}<var>=<val>{{|-|}} ...]")
		printStr("{{_UsageCommand_}}--set={{|-|}}{{_UsageVar_}}<var>,<val>{{|-|}}")
		printStr("	Set the {{_UsageVar_}}<val>{{|-|}}ue of a {{_UsageVar_}}<var>{{|-|}}iable")
	}
	if match("--set-literal", "--set-literal=") {
		printStr("{{_UsageCommand_}}--set-literal{{|-|}} {{_UsageVar_}}<var>=<val>{{|-|}} [{{_UsageVar_}}<var>=<val>{{|-|}} ...]")
		printStr("{{_UsageCommand_}}--set-literal={{|-|}}{{_UsageVar_}}<var>,<val>{{|-|}}")
		printStr("	Set the literal value of a {{_UsageVar_}}<var>{{|-|}}iable (no quoting added)")
	}
	if match("-l", "--list") {
		printStr("{{_UsageCommand_}}-l --list{{|-|}}")
		printStr("	List the assignment lines of the env file")
	}
	if match("-p", "--print") {
		printStr("{{_UsageCommand_}}-p --print{{|-|}}")
		printStr("	Parse the env file strictly and print the variables in order")
	}
	if match("-c", "--check") {
		printStr("{{_UsageCommand_}}-c --check{{|-|}} [{{_UsageFile_}}<file>{{|-|}} ...]")
		printStr("	Parse the env file(s) strictly and report the first error in each")
	}
	if match("-m", "--merge") {
		printStr("{{_UsageCommand_}}-m --merge{{|-|}} {{_UsageFile_}}<source>{{|-|}}")
		printStr("	Copy variables from the source file that are not yet in the env file")
	}
	if match("-e", "--exec") {
		printStr("{{_UsageCommand_}}-e --exec{{|-|}} {{_UsageCommand_}}<command>{{|-|}} [{{_UsageCommand_}}<args>{{|-|}} ...]")
		printStr("	Load the env file into the environment, then run the command.")
		printStr("	Existing variables are kept unless '{{_UsageCommand_}}--override{{|-|}}' is given.")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}}")
		printStr("	Show this usage information")
		printStr("{{_UsageCommand_}}-h --help{{|-|}} {{_UsageCommand_}}<option>{{|-|}}")
		printStr("	Show the usage of the specified option")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Display version information")
	}

	return strings.TrimRight(sb.String(), "\n")
}
