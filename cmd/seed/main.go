package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"innsight/database"
)

func main() {
	out := flag.String("out", "Reservations.xlsx", "chemin du classeur généré")
	count := flag.Int("n", 5000, "nombre de réservations")
	seed := flag.Int64("seed", 42, "graine du générateur")
	lang := flag.String("lang", "pt", "langue des en-têtes (pt|en)")
	toPostgres := flag.Bool("pg", false, "charger aussi les réservations dans PostgreSQL")
	flag.Parse()

	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	fmt.Println("🌱 Génération des réservations...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	reservations := database.GenerateReservations(*count, *seed)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("❌ Erreur création du fichier:", err)
	}
	if err := database.WriteWorkbook(f, reservations, database.Headers(*lang)); err != nil {
		f.Close()
		log.Fatal("❌ Erreur écriture du classeur:", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal("❌ Erreur écriture du classeur:", err)
	}
	fmt.Printf("   📄 %d réservations écrites dans %s\n", len(reservations), *out)

	if *toPostgres {
		if err := database.Init(database.ConnStringFromEnv()); err != nil {
			log.Fatal("❌ Erreur connexion DB:", err)
		}
		defer database.Close()
		fmt.Println("✅ Connexion PostgreSQL établie")

		if err := database.SeedDatabase(*count, *seed); err != nil {
			log.Fatal("❌ Erreur lors du seed:", err)
		}
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant démarrer l'application avec:")
	fmt.Printf("  DATA_PATH=%s go run .\n", *out)
	fmt.Println()
	fmt.Println("Et tester les endpoints:")
	fmt.Println("  http://localhost:8080/api/v1/dashboard")
	fmt.Println("  http://localhost:8080/api/v1/export/kpis.csv")
}
