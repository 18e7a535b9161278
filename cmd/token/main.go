// Command token emite un JWT firmado con JWT_SECRET para usar las rutas de escritura.
//
//	go run ./cmd/token -sub caja-principal -role operador
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "admin", "sujeto del token")
	role := flag.String("role", jwt.RoleAdmin, "rol: admin | operador")
	exp := flag.Int("exp", 0, "expiración en minutos (0 = JWT_EXPIRATION)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET vacío: las rutas de escritura no exigen token")
		os.Exit(1)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleOperator {
		fmt.Fprintf(os.Stderr, "rol %q no soportado\n", *role)
		os.Exit(2)
	}

	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	token, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
