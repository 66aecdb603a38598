// SPDX-License-Identifier: MPL-2.0

// reconprov deploys telegram-recon-bot onto a Linux host: it provisions
// the service account, the Python environment, and the systemd unit, then
// starts the service.
package main

import cmd "reconprov/cmd/reconprov"

func main() {
	cmd.Execute()
}
