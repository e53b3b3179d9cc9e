package cli

import (
	"fmt"

	"github.com/diillson/xm-reports-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
         /$$   /$$ /$$      /$$       /$$$$$$$                                           /$$             
        | $$  / $$| $$$    /$$$      | $$__  $$                                         | $$             
        |  $$/ $$/| $$$$  /$$$$      | $$  \ $$  /$$$$$$   /$$$$$$   /$$$$$$   /$$$$$$ /$$$$$$   /$$$$$$$
         \  $$$$/ | $$ $$/$$ $$      | $$$$$$$/ /$$__  $$ /$$__  $$ /$$__  $$ /$$__  $|_  $$_/  /$$_____/
          >$$  $$ | $$  $$$| $$      | $$__  $$| $$$$$$$$| $$  \ $$| $$  \ $$| $$  \__/ | $$   |  $$$$$$ 
         /$$/\  $$| $$\  $ | $$      | $$  \ $$| $$_____/| $$  | $$| $$  | $$| $$       | $$ /$$\____  $$
        | $$  \ $$| $$ \/  | $$      | $$  | $$|  $$$$$$$| $$$$$$$/|  $$$$$$/| $$       |  $$$$//$$$$$$$/
        |__/  |__/|__/     |__/      |__/  |__/ \_______/| $$____/  \______/ |__/        \___/ |_______/ 
                                                         | $$                                            
                                                         | $$                                            
                                                         |__/                                            
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("XM Reports CLI (v%s)", formattedVersion)))
}
