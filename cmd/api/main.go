package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/corehr/corehr-backend-go/internal/config"
	"github.com/corehr/corehr-backend-go/internal/fixtures"
	appHTTP "github.com/corehr/corehr-backend-go/internal/handler/http"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
	"github.com/corehr/corehr-backend-go/internal/pkg/migrate"
	"github.com/corehr/corehr-backend-go/internal/repository/postgresql"
	employeeService "github.com/corehr/corehr-backend-go/internal/service/employee"
	"github.com/corehr/corehr-backend-go/migrations"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	migrator, err := migrate.NewFSMigrator(db, migrations.FS)
	if err != nil {
		log.Fatal("Error loading migrations: ", err)
	}
	if err := migrator.MigrateUp(ctx); err != nil {
		log.Fatal("Error applying migrations: ", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)

	if cfg.App.SeedData {
		if err := fixtures.SeedEmployees(ctx, db, employeeRepo); err != nil {
			log.Fatal("Error seeding employees: ", err)
		}
	}

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
