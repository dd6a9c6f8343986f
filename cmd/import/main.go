package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arutourism/arutourism-backend/config"
	"github.com/arutourism/arutourism-backend/internal/app/repository"
	"github.com/arutourism/arutourism-backend/internal/db"
	"github.com/arutourism/arutourism-backend/internal/importer"
	"github.com/arutourism/arutourism-backend/pkg/logger"
)

func main() {
	var (
		filePath = flag.String("file", "", "planilha .csv ou .xlsx com as empresas")
		usuario  = flag.String("usuario", "", "username do usuário dono das empresas importadas")
		formato  = flag.String("formato", "", "força o formato da planilha: google ou padrao")
		yes      = flag.Bool("yes", false, "não pedir confirmação")
	)
	flag.Parse()

	if *filePath == "" || *usuario == "" {
		fmt.Fprintln(os.Stderr, "Usage: import -file planilha.xlsx -usuario admin [-formato google|padrao] [-yes]")
		os.Exit(2)
	}

	var format importer.Format
	switch *formato {
	case "":
		format = importer.FormatAuto
	case "google":
		format = importer.FormatGoogle
	case "padrao":
		format = importer.FormatPadrao
	default:
		log.Fatalf("formato inválido: %s (use google ou padrao)", *formato)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	owner, err := userRepo.FindByUsername(*usuario)
	if err != nil {
		log.Fatalf("Usuário %q não encontrado: %v", *usuario, err)
	}

	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatal("Failed to open file:", err)
	}
	defer file.Close()

	fmt.Printf("Importing %s for user %s (id=%d)\n", *filePath, owner.Username, owner.ID)

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	imp := importer.New(db.GetDB(), &cfg.Import)
	summary, err := imp.Run(file, filepath.Base(*filePath), format, owner.ID)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("\n=== Import summary ===")
	fmt.Printf("Criadas:     %d\n", summary.Criadas)
	fmt.Printf("Atualizadas: %d\n", summary.Atualizadas)
	fmt.Printf("Inalteradas: %d\n", summary.Inalteradas)
	fmt.Printf("Erros:       %d\n", summary.Erros)
	for _, msg := range summary.Mensagens {
		fmt.Printf("  - %s\n", msg)
	}

	if !summary.Ok {
		os.Exit(1)
	}
}
