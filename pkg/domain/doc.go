/*
Package domain contains the core models shared by the installer, its adapters and the CLI.

It is kept free of I/O: detecting the platform, reading the environment and running
commands happen in adapters, which only exchange the values defined here.

# Key Entities

  - State: Whether the virtual environment directory exists (Uninstalled or Installed).
  - Platform: A row of the platform table (interpreter, pip, package manager, shell).
  - Env: The snapshot of the calling shell's environment, passed explicitly into the installer.
  - LifecycleHooks: Callbacks fired around command execution and state transitions.
*/
package domain
