package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/rodrigolessa1980/Cupom-Transporte/internal/auth"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cliente"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/cupom"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/empresa"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/itemproibido"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/motorista"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/notificacao"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/usuario"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/utils/db"
	"github.com/rodrigolessa1980/Cupom-Transporte/internal/webhook"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	logger := log.WithField("app", "cupom-transporte")

	if err := auth.CarregarSegredo(); err != nil {
		logger.WithError(err).Fatal("configuração inválida")
	}

	baseURL := os.Getenv("WEBHOOK_BASE_URL")
	if baseURL == "" {
		logger.Fatal("WEBHOOK_BASE_URL não definida")
	}

	database, err := db.AbrirCacheLocal(os.Getenv("CACHE_LOCAL_PATH"))
	if err != nil {
		logger.WithError(err).Fatal("erro ao abrir cache local")
	}
	if err := database.AutoMigrate(
		&motorista.Motorista{},
		&itemproibido.ItemProibido{},
	); err != nil {
		logger.WithError(err).Fatal("erro no AutoMigrate do cache local")
	}

	api := webhook.NewClient(baseURL, logger.WithField("componente", "webhook"))
	alertas := notificacao.NewNotificador(os.Getenv("NOTIFICACAO_WEBHOOK_URL"),
		logger.WithField("componente", "notificacao"))

	// Handlers
	store := cupom.NovoStore()
	cupomHandler := cupom.NewHandler(store, api, alertas, logger.WithField("componente", "cupom"))
	empresaHandler := empresa.NewHandler(api, logger.WithField("componente", "empresa"))
	motoristaHandler := motorista.NewHandler(database, api, logger.WithField("componente", "motorista"))
	itemHandler := itemproibido.NewHandler(database, api, logger.WithField("componente", "itemproibido"))
	usuarioHandler := usuario.NewHandler(api, logger.WithField("componente", "usuario"))
	clienteHandler := cliente.NewHandler(api, logger.WithField("componente", "cliente"))
	authHandler := auth.NewHandler(api, logger.WithField("componente", "auth"))

	// Carga inicial do snapshot de cupons. Webhook fora do ar não impede a
	// subida; o serviço nasce em modo offline e recarrega sob demanda.
	if err := cupomHandler.CarregarCupons(context.Background()); err != nil {
		logger.WithError(err).Warn("carga inicial de cupons falhou")
	}

	// Router
	r := mux.NewRouter()

	// Rota pública de autenticação
	r.HandleFunc("/login", authHandler.Login).Methods("POST")

	protegido := r.NewRoute().Subrouter()
	protegido.Use(auth.MiddlewareAutenticacao)

	protegido.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Rotas de cupons
	protegido.HandleFunc("/cupons", cupomHandler.Listar).Methods("GET")
	protegido.HandleFunc("/cupons", cupomHandler.Criar).Methods("POST")
	protegido.HandleFunc("/cupons/recarregar", cupomHandler.Recarregar).Methods("POST")
	protegido.HandleFunc("/cupons/duplicatas", cupomHandler.Duplicatas).Methods("GET")
	protegido.HandleFunc("/cupons/resumo", cupomHandler.Resumo).Methods("GET")
	protegido.HandleFunc("/cupons/baixa", cupomHandler.RealizarBaixa).Methods("POST")
	protegido.HandleFunc("/cupons/{id}", cupomHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/cupons/{id}", cupomHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/cupons/{id}", cupomHandler.Deletar).Methods("DELETE")
	protegido.HandleFunc("/cupons/{id}/status", cupomHandler.AtualizarStatus).Methods("PATCH")

	// Rotas de empresas (transportadoras)
	protegido.HandleFunc("/empresas", empresaHandler.Listar).Methods("GET")
	protegido.HandleFunc("/empresas", empresaHandler.Criar).Methods("POST")
	protegido.HandleFunc("/empresas/{id}", empresaHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/empresas/{id}", empresaHandler.Deletar).Methods("DELETE")

	// Rotas de motoristas
	protegido.HandleFunc("/motoristas", motoristaHandler.Listar).Methods("GET")
	protegido.HandleFunc("/motoristas", motoristaHandler.Criar).Methods("POST")
	protegido.HandleFunc("/motoristas/telefone", motoristaHandler.BuscarPorTelefone).Methods("GET")
	protegido.HandleFunc("/motoristas/{id}", motoristaHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/motoristas/{id}", motoristaHandler.Deletar).Methods("DELETE")

	// Rotas de itens proibidos
	protegido.HandleFunc("/itens-proibidos", itemHandler.Listar).Methods("GET")
	protegido.HandleFunc("/itens-proibidos", itemHandler.Criar).Methods("POST")
	protegido.HandleFunc("/itens-proibidos/verificar", itemHandler.Verificar).Methods("GET")
	protegido.HandleFunc("/itens-proibidos/{id}", itemHandler.Atualizar).Methods("PUT")
	protegido.HandleFunc("/itens-proibidos/{id}", itemHandler.Deletar).Methods("DELETE")

	// Rotas de clientes
	protegido.HandleFunc("/clientes", clienteHandler.Listar).Methods("GET")

	// Gestão de usuários é restrita a administradores
	admin := protegido.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	admin.HandleFunc("/usuarios", usuarioHandler.Criar).Methods("POST")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	admin.HandleFunc("/usuarios/{id}", usuarioHandler.Deletar).Methods("DELETE")
	admin.HandleFunc("/usuarios/{id}/alternar", usuarioHandler.AlternarAtivo).Methods("PATCH")

	origens := []string{"*"}
	if valor := os.Getenv("CORS_ORIGINS"); valor != "" {
		origens = strings.Split(valor, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origens,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORTA")
	if porta == "" {
		porta = "8080"
	}
	logger.WithField("porta", porta).Info("servidor iniciado")
	if err := http.ListenAndServe(":"+porta, c.Handler(r)); err != nil {
		logger.WithError(err).Fatal("servidor encerrado")
	}
}
