package main

import (
	"fmt"
	"os"
	"strconv"

	"userregistry/pkg/factory"
)

// Seeds the users listed in SEED_USERS and deletes every user id given as an
// argument through the registry, logging what the store answered.
func main() {
	appFactory, err := factory.NewFactory()
	if err != nil {
		fmt.Printf("Factory oluşturulamadı: %v\n", err)
		os.Exit(1)
	}

	err = run(appFactory, os.Args[1:])

	if closeErr := appFactory.Close(); closeErr != nil {
		appFactory.GetLogger().Error("Kaynaklar kapatılamadı", map[string]interface{}{"error": closeErr.Error()})
	}

	if err != nil {
		os.Exit(1)
	}
}

func run(appFactory factory.Factory, args []string) error {
	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()

	log.Info("Uygulama başlatılıyor", map[string]interface{}{"env": cfg.AppEnv, "driver": cfg.Database.Driver})

	seed, err := factory.ParseSeedUsers(cfg.SeedUsers)
	if err != nil {
		log.Error("SEED_USERS okunamadı", map[string]interface{}{"error": err.Error()})
		return err
	}

	if err := appFactory.SeedUsers(seed); err != nil {
		log.Error("Başlangıç kullanıcıları yüklenemedi", map[string]interface{}{"error": err.Error()})
		return err
	}

	userService := appFactory.GetUserService()

	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			log.Warn("Geçersiz kullanıcı ID'si", map[string]interface{}{"arg": arg})
			continue
		}

		deleted, err := userService.Delete(id)
		if err != nil {
			continue
		}

		log.Info("Silme isteği tamamlandı", map[string]interface{}{"id": id, "deleted": deleted})
	}

	log.Info("Kayıtlı kullanıcılar", map[string]interface{}{"count": len(userService.GetAll())})
	return nil
}
