package main

import (
	"fmt"
	"os"
)

func runCompletion(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: electa completion <bash|zsh|fish|powershell>")
		return 2
	}

	shell := args[0]
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	case "powershell":
		fmt.Print(powershellCompletion)
	default:
		fmt.Fprintf(os.Stderr, "unsupported shell: %s\n", shell)
		fmt.Fprintln(os.Stderr, "Supported shells: bash, zsh, fish, powershell")
		return 2
	}

	return 0
}

const bashCompletion = `# electa bash completion
_electa_completions() {
    local cur prev commands
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    commands="scan watch rules diff serve version completion"

    case "${prev}" in
        electa)
            COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
            return 0
            ;;
        -format)
            COMPREPLY=( $(compgen -W "table json sarif all" -- "${cur}") )
            return 0
            ;;
        rules)
            COMPREPLY=( $(compgen -W "validate list" -- "${cur}") )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "-rules -format -output -ext -alt-path -exclude -workers -progress -interactive -log-level -quiet -version -json -debounce" -- "${cur}") )
        return 0
    fi

    COMPREPLY=( $(compgen -d -- "${cur}") )
}
complete -F _electa_completions electa
`

const zshCompletion = `#compdef electa
# electa zsh completion

_electa() {
    local -a commands
    commands=(
        'scan:Resolve choice rules against a directory'
        'watch:Re-scan on file changes'
        'rules:Validate or list rule files'
        'diff:Compare two findings reports'
        'serve:Start MCP server on stdio'
        'version:Print version and exit'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '-format[Output format]:format:(table json sarif all)' \
        '-output[Output directory]:directory:_files -/' \
        '-rules[Rules file or directory]:path:_files' \
        '(-q -quiet)'{-q,-quiet}'[Suppress output]' \
        '-version[Print version]' \
        '1:command:->cmds' \
        '*::arg:->args'

    case "$state" in
        cmds)
            _describe 'command' commands
            ;;
        args)
            case "${words[1]}" in
                scan|watch)
                    _files -/
                    ;;
                rules)
                    _values 'subcommand' validate list
                    ;;
                diff)
                    _files
                    ;;
                completion)
                    _values 'shell' bash zsh fish powershell
                    ;;
            esac
            ;;
    esac
}

_electa "$@"
`

const fishCompletion = `# electa fish completion
complete -c electa -n '__fish_use_subcommand' -a 'scan' -d 'Resolve choice rules against a directory'
complete -c electa -n '__fish_use_subcommand' -a 'watch' -d 'Re-scan on file changes'
complete -c electa -n '__fish_use_subcommand' -a 'rules' -d 'Validate or list rule files'
complete -c electa -n '__fish_use_subcommand' -a 'diff' -d 'Compare two findings reports'
complete -c electa -n '__fish_use_subcommand' -a 'serve' -d 'Start MCP server on stdio'
complete -c electa -n '__fish_use_subcommand' -a 'version' -d 'Print version and exit'
complete -c electa -n '__fish_use_subcommand' -a 'completion' -d 'Generate shell completions'
complete -c electa -o format -d 'Output format' -a 'table json sarif all'
complete -c electa -o output -d 'Output directory' -rF
complete -c electa -o rules -d 'Rules file or directory' -rF
complete -c electa -s q -o quiet -d 'Suppress output'
complete -c electa -o version -d 'Print version'
complete -c electa -n '__fish_seen_subcommand_from rules' -a 'validate list'
complete -c electa -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'
`

const powershellCompletion = `# electa PowerShell completion
Register-ArgumentCompleter -CommandName electa -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @('scan', 'watch', 'rules', 'diff', 'serve', 'version', 'completion')

    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
