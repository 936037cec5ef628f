package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Geo   GeoConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// GeoConfig carries the map-view tunables: the fixed radius used by the
// distance filter and the default camera shown before any interaction.
type GeoConfig struct {
	RadiusMeters float64
	HomeLat      float64
	HomeLon      float64
	HomeZoom     float64
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	migrationsDir := viper.GetString("DB_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "db/migrations"
	}

	radiusMeters := viper.GetFloat64("GEO_RADIUS_METERS")
	if radiusMeters <= 0 {
		radiusMeters = 5000
	}

	homeZoom := viper.GetFloat64("GEO_HOME_ZOOM")
	if homeZoom <= 0 {
		homeZoom = 11.5
	}

	// (0,0) is open ocean, not a map view anyone configured.
	homeLat := viper.GetFloat64("GEO_HOME_LAT")
	homeLon := viper.GetFloat64("GEO_HOME_LON")
	if homeLat == 0 && homeLon == 0 {
		homeLat = -7.7956
		homeLon = 110.3695
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: migrationsDir,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Geo: GeoConfig{
			RadiusMeters: radiusMeters,
			HomeLat:      homeLat,
			HomeLon:      homeLon,
			HomeZoom:     homeZoom,
		},
	}

	return config, nil
}
