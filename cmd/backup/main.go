package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"wingtrack/internal/catalog"
	"wingtrack/internal/config"
	"wingtrack/internal/database"
	"wingtrack/internal/repository"
	"wingtrack/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	exportEmail := exportCmd.String("email", "", "Email the backup to this address via SES")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cat, err := catalog.New()
	if err != nil {
		log.Fatalf("Failed to build catalog: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	favoritesRepo := repository.NewFavoritesRepository(db)
	profileService := service.NewProfileService(profileRepo, cat)
	if err := profileService.LoadFromStore(); err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	backupService := service.NewBackupService(profileService, profileRepo, favoritesRepo, cfg.DatabaseType)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, cfg, *exportOutput, *exportEmail)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, cfg *config.Config, outputPath, emailTo string) {
	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if outputPath != "" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	written, err := backupService.ExportToFile(outputPath)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(written)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)

	if emailTo == "" {
		return
	}

	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, false)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Fatal("Cannot email backup: SES_FROM_EMAIL is not configured")
	}

	backup, err := backupService.Export()
	if err != nil {
		log.Fatalf("Failed to build backup for email: %v", err)
	}
	if err := emailService.SendBackup(context.Background(), emailTo, backup); err != nil {
		log.Fatalf("Failed to email backup: %v", err)
	}
	log.Printf("Backup emailed to %s", emailTo)
}

func handleImport(backupService *service.BackupService, inputPath string) {
	// Check if file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	log.Printf("Importing from: %s", inputPath)
	if err := backupService.ImportFromFile(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Println("Import complete!")
}

func printUsage() {
	fmt.Println("Usage: backup <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  export   Export the stored documents to a JSON file")
	fmt.Println("  import   Restore documents from a JSON backup")
	fmt.Println()
	fmt.Println("Export options:")
	fmt.Println("  -output string   Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println("  -email string    Email the backup to this address via SES")
	fmt.Println()
	fmt.Println("Import options:")
	fmt.Println("  -input string    Input file path (required)")
}
