package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/itelsaia/agente-itelsa-ia/services/engine"
)

// runConsole drives the engine from stdin so the whole conversation flow can
// be exercised without a messaging channel.
func runConsole(eng engine.Engine) {
	fmt.Println("Agente ITELSA IA - modo consola (escribe 'salir' para terminar)")

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	const userID = "console"

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") {
			fmt.Println("Hasta pronto.")
			return
		}
		fmt.Println(eng.HandleTurn(ctx, userID, text))
	}
}
