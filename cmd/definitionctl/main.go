// Command definitionctl herramientas de línea de comandos del generador de definiciones:
// inspeccionar el contrato, compilar instrucciones, validar documentos, emitir tokens
// de servicio y exportar el historial.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
