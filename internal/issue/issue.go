// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	TargetNotFoundId Id = iota + 1
	TargetShapeId
	ParameterFileNotFoundId
	InvalidParameterFileId
	UnknownParameterId
	MissingScriptNameId
	BlockedLaunchId
	ExecutionFailedId
	RunnerNotAvailableId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	targetNotFoundIssue = &Issue{
		id: TargetNotFoundId,
		mdMsg: `
# Target script not found!

The script path you passed does not exist on disk.

## Things you can try:
- Check the path for typos:
~~~
$ ls -l /path/to/script.sh
~~~

- Use an absolute path if you launched from a different directory
- If the script lives on a mount, verify the mount is up`,
	}

	targetShapeIssue = &Issue{
		id: TargetShapeId,
		mdMsg: `
# Target is not a launchable script!

The path exists but does not look like something paralaunch can execute.

## What counts as launchable:
- A regular file (not a directory or device)
- A shell script (.sh/.bash), with or without a signature sidecar

## Things you can try:
- Point at the script file itself, not its directory
- Declare the signature in a sidecar next to the script:
~~~cue
// myscript.sh.sig.cue
params: [
  {name: "Source", type: "scalar", required: true},
  {name: "DryRun", type: "scalar", default: "false"},
]
~~~

- Or annotate the script header directly:
~~~bash
#!/usr/bin/env bash
# @param Source required
# @param DryRun default=false
~~~`,
	}

	parameterFileNotFoundIssue = &Issue{
		id: ParameterFileNotFoundId,
		mdMsg: `
# Parameter file not found!

The parameter file you passed does not exist on disk.

## Things you can try:
- Check the path for typos
- Parameter files must end in .cue or .json
- Create a minimal one:
~~~cue
ScriptName: "nightly-sync"
Source:     "/data/in"
~~~`,
	}

	invalidParameterFileIssue = &Issue{
		id: InvalidParameterFileId,
		mdMsg: `
# Failed to parse the parameter file!

The parameter file exists but is not a valid CUE/JSON record.

## Common issues:
- Invalid syntax (missing quotes, braces, commas)
- Top level is a list or scalar instead of a record
- Unsupported value forms (functions, disjunctions)

## Things you can try:
- Check the error message above for the specific location
- Keep the top level a flat record of parameter values:
~~~cue
ScriptName: "nightly-sync"
Source:     "/data/in"
Targets:    ["a", "b"]
Options: {
  retries: 3
}
~~~`,
	}

	unknownParameterIssue = &Issue{
		id: UnknownParameterId,
		mdMsg: `
# Unknown parameter!

The parameter file names a parameter the target script does not declare.

## Things you can try:
- Inspect the declared signature:
~~~
$ paralaunch inspect /path/to/script.sh
~~~

- Check for typos in the parameter name (names are case-sensitive)
- If the parameter is new, declare it in the script's sidecar or
  annotation header before using it`,
	}

	missingScriptNameIssue = &Issue{
		id: MissingScriptNameId,
		mdMsg: `
# Missing ScriptName!

Every parameter file must carry a non-empty ScriptName attribute: it is the
run's identity and names its log and artifact files.

## Things you can try:
- Add it to the parameter file:
~~~cue
ScriptName: "nightly-sync"
~~~

- Or override it on the command line:
~~~
$ paralaunch run script.sh params.cue --run-name nightly-sync
~~~`,
	}

	blockedLaunchIssue = &Issue{
		id: BlockedLaunchId,
		mdMsg: `
# Launch blocked!

The target declares a mandatory parameter that ended up with no value, so the
launch never got past its parameter prompt.

## Things you can try:
- Inspect the signature to see which parameters are required:
~~~
$ paralaunch inspect /path/to/script.sh
~~~

- Supply the missing parameter in the parameter file
- Or give it a default in the script's signature declaration`,
	}

	executionFailedIssue = &Issue{
		id: ExecutionFailedId,
		mdMsg: `
# Target execution failed!

The target script launched but terminated unsuccessfully.

## Things you can try:
- Read the diagnostic artifact written next to the run's logs; it carries
  the error message and the exact argument vector that was passed
- Run with verbose mode for more details:
~~~
$ paralaunch --verbose run script.sh params.cue
~~~

- Test the script manually with the same arguments`,
	}

	runnerNotAvailableIssue = &Issue{
		id: RunnerNotAvailableId,
		mdMsg: `
# Runner not available!

The requested execution runner cannot be used on this system.

## Available runners:
- **virtual**: built-in shell interpreter, always available
- **native**: your system shell (bash, sh, pwsh)

## Things you can try:
- Switch runners on the command line:
~~~
$ paralaunch run script.sh params.cue --runner virtual
~~~

- Or change the default in your config:
~~~cue
default_runner: "virtual"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the paralaunch configuration file.

## Configuration file locations:
- Linux: ~/.config/paralaunch/config.cue
- macOS: ~/Library/Application Support/paralaunch/config.cue
- Windows: %APPDATA%\paralaunch\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ paralaunch config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
default_runner: "virtual"
grace_period:   "5s"
log_dir:        "/var/log/paralaunch"

notification: {
  enabled: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		targetNotFoundIssue.Id():        targetNotFoundIssue,
		targetShapeIssue.Id():           targetShapeIssue,
		parameterFileNotFoundIssue.Id(): parameterFileNotFoundIssue,
		invalidParameterFileIssue.Id():  invalidParameterFileIssue,
		unknownParameterIssue.Id():      unknownParameterIssue,
		missingScriptNameIssue.Id():     missingScriptNameIssue,
		blockedLaunchIssue.Id():         blockedLaunchIssue,
		executionFailedIssue.Id():       executionFailedIssue,
		runnerNotAvailableIssue.Id():    runnerNotAvailableIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
