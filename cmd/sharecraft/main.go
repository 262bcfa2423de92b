package main

import (
	"log"
	"os"
	"strings"

	"github.com/sharecraft/sharecraft"
)

func main() {
	cfg := sharecraft.Config{
		OriginURL:     sharecraft.MustEnv("ORIGIN_URL"),
		Addr:          sharecraft.EnvOr("LISTEN_ADDR", ":8787"),
		DatabasePath:  sharecraft.EnvOr("DATABASE_PATH", "data/previews.db"),
		UploadsDir:    sharecraft.EnvOr("UPLOADS_DIR", "data/uploads"),
		AdminUsername: sharecraft.EnvOr("ADMIN_USERNAME", "admin"),
		AdminPassword: sharecraft.MustEnv("ADMIN_PASSWORD"),
		CookieSecure:  boolEnv("COOKIE_SECURE"),
		S3: sharecraft.S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          os.Getenv("S3_REGION"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			UsePathStyle:    boolEnv("S3_PATH_STYLE"),
		},
	}

	app := sharecraft.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func boolEnv(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}
