/*
Package platform maps operating systems to the commands used to bootstrap Python on them.

The mapping is a static table of domain.Platform values rather than chained
conditionals, so every row can be inspected and tested on any host.

	p := platform.Detect(runtime.GOOS)
	fmt.Println(p.Interpreter, p.InstallInterpreter)
*/
package platform
