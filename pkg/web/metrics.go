package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tics",
		Subsystem: "files",
		Name:      "uploads_total",
		Help:      "The total number of stored file versions",
	}, []string{"repo"})

	downloadCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tics",
		Subsystem: "files",
		Name:      "downloads_total",
		Help:      "The total number of served file versions",
	}, []string{"repo"})

	versionDeleteCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tics",
		Subsystem: "files",
		Name:      "version_deletes_total",
		Help:      "The total number of deleted file versions",
	}, []string{"repo"})

	loginCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tics",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "The total number of login attempts by result",
	}, []string{"result"})
)
