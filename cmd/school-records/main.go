// Command school-records serves the school records API and manages its
// database.
//
//	school-records serve   --config=config/local.yaml
//	school-records migrate --config=config/local.yaml
//	school-records seed    --config=config/local.yaml
//
// CONFIG_PATH may be used instead of --config.
package main

import "github.com/aanand-mishra/school-records/cmd/school-records/commands"

func main() {
	commands.Execute()
}
