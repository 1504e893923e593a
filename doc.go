/*
Package venvstrap bootstraps a Python virtual environment for a project directory.

It detects the platform, ensures a base interpreter is installed, creates the
environment with virtualenv (falling back to the built-in venv module), writes an
activate.sh snippet, and installs the project in editable mode when it carries
setup.py or pyproject.toml.

# State

A project directory is either Uninstalled or Installed, depending only on whether
the "venv" directory exists. Install moves it to Installed; Remove moves it back.
Running from inside an activated environment is refused before anything is touched.

# Usage

	env, err := config.EnvFromOS()
	if err != nil {
		log.Fatal(err)
	}

	b, err := venvstrap.New(".")
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Install(context.Background(), env); err != nil {
		log.Fatal(err)
	}

The venvstrap command wraps the same API:

	venvstrap            # install (idempotent)
	venvstrap --remove   # delete venv and activate.sh
*/
package venvstrap
