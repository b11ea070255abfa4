package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/hotgigs/talent/internal/ai/embeddings"
	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/internal/nlp"
	"github.com/hotgigs/talent/internal/ocr"
	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/fsx"
	"github.com/hotgigs/talent/pkg/fsx/fsxs3"
	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/application/applicationapi"
	"github.com/hotgigs/talent/recruitment/application/applicationinfra"
	"github.com/hotgigs/talent/recruitment/application/applicationsrv"
	"github.com/hotgigs/talent/recruitment/candidate/candidateapi"
	"github.com/hotgigs/talent/recruitment/candidate/candidateauth"
	"github.com/hotgigs/talent/recruitment/candidate/candidateinfra"
	"github.com/hotgigs/talent/recruitment/candidate/candidatesrv"
	"github.com/hotgigs/talent/recruitment/job/jobapi"
	"github.com/hotgigs/talent/recruitment/job/jobinfra"
	"github.com/hotgigs/talent/recruitment/job/jobsrv"
	"github.com/hotgigs/talent/recruitment/match/matchapi"
	"github.com/hotgigs/talent/recruitment/match/matchsrv"
	"github.com/hotgigs/talent/recruitment/resume/resumeapi"
	"github.com/hotgigs/talent/recruitment/resume/resumeinfra"
	"github.com/hotgigs/talent/recruitment/resume/resumesrv"
	"github.com/hotgigs/talent/recruitment/resume/worker"
)

const resumeQueueName = "resume:jobs"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Auth
	TokenService          auth.TokenService
	UnifiedAuthMiddleware *auth.UnifiedAuthMiddleware

	// Domain Services
	JobService           *jobsrv.JobService
	CandidateService     *candidatesrv.CandidateService
	CandidateAuthService *candidateauth.AuthService
	ResumeService        *resumesrv.Service
	ApplicationService   *applicationsrv.ApplicationService
	MatchService         *matchsrv.MatchService

	// Background Workers
	ResumeWorker *worker.ResumeWorker

	// API Handlers
	JobHandlers           *jobapi.Handlers
	CandidateHandlers     *candidateapi.Handlers
	CandidateAuthHandlers *candidateauth.Handlers
	ResumeHandlers        *resumeapi.ResumeHandlers
	ApplicationHandlers   *applicationapi.ApplicationHandlers
	MatchHandlers         *matchapi.MatchHandlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 File Storage
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Token Service
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(jwtSecret, "hotgigs-talent", tokenTTL())
	c.UnifiedAuthMiddleware = auth.NewUnifiedAuthMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	openaiKey := os.Getenv("OPENAI_API_KEY")

	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)
	processingJobRepo := resumeinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	// --- Parsing Pipeline ---
	parser := parsing.NewParser(
		nlp.NewHeuristicRecognizer(),
		ocr.NewSpaceClient(os.Getenv("OCRSPACE_API_KEY")),
		ocr.NewVisionRecognizer(openaiKey),
	)
	embedGen := embeddings.NewGenerator(openaiKey)
	queue := resumeinfra.NewRedisQueue(c.Redis, resumeQueueName)

	// --- Matching Engine ---
	// One engine instance shared across requests. It is fitted lazily
	// on first use and refitted on demand through the matching API.
	engine := matching.NewEngine()

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo)
	c.CandidateService = candidatesrv.NewCandidateService(candidateRepo)
	c.CandidateAuthService = candidateauth.NewAuthService(candidateRepo, c.TokenService, tokenTTL())
	c.ResumeService = resumesrv.NewService(
		resumeRepo,
		processingJobRepo,
		candidateRepo,
		parser,
		embedGen,
		c.FileSystem,
		queue,
	)
	c.MatchService = matchsrv.NewMatchService(candidateRepo, jobRepo, applicationRepo, engine)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		jobRepo,
		resumeRepo,
		c.MatchService,
	)

	// --- Background Workers ---
	c.ResumeWorker = worker.NewResumeWorker(c.ResumeService, queue, resumeWorkerCount())

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.CandidateAuthHandlers = candidateauth.NewHandlers(c.CandidateAuthService)
	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, c.FileSystem)
	c.ApplicationHandlers = applicationapi.NewApplicationHandlers(c.ApplicationService)
	c.MatchHandlers = matchapi.NewMatchHandlers(c.MatchService)
}

func tokenTTL() time.Duration {
	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 24 * time.Hour
}

func resumeWorkerCount() int {
	if raw := os.Getenv("RESUME_WORKERS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 2
}
