package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginInvalid = "invalid"

	DeleteDeleted  = "deleted"
	DeleteNotFound = "not_found"
	DeleteError    = "error"
)

var (
	UsersAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "userregistry_users_added_total",
			Help: "Kayda eklenen toplam kullanıcı sayısı",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "userregistry_login_attempts_total",
			Help: "Sonuca göre giriş denemesi sayısı",
		},
		[]string{"result"},
	)

	Deletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "userregistry_deletes_total",
			Help: "Sonuca göre silme isteği sayısı",
		},
		[]string{"result"},
	)
)

func RecordUsersAdded(n int) {
	UsersAdded.Add(float64(n))
}

func RecordLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

func RecordDelete(result string) {
	Deletes.WithLabelValues(result).Inc()
}
