package domain

import (
	interfaces "liendesk/internal/domain/interfaces"
	types "liendesk/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProjectID                 = types.ProjectID
	EntityID                  = types.EntityID
	Option                    = types.Option
	Catalog                   = types.Catalog
	Date                      = types.Date
	Money                     = types.Money
	Step                      = types.Step
	Draft                     = types.Draft
	Patch                     = types.Patch
	Snapshot                  = types.Snapshot
	PendingFile               = types.PendingFile
	UploadSection             = types.UploadSection
	DetailsSection            = types.DetailsSection
	DatesSection              = types.DatesSection
	DescriptionSection        = types.DescriptionSection
	ContractSection           = types.ContractSection
	ContactsSection           = types.ContactsSection
	DocumentsSection          = types.DocumentsSection
	DeadlinesSection          = types.DeadlinesSection
	TasksSection              = types.TasksSection
	SignatureSection          = types.SignatureSection
	Contact                   = types.Contact
	Document                  = types.Document
	Task                      = types.Task
	TaskCount                 = types.TaskCount
	TaskFilter                = types.TaskFilter
	Deadline                  = types.Deadline
	DeadlineRequest           = types.DeadlineRequest
	RemedyDatesRequest        = types.RemedyDatesRequest
	RemedyDateField           = types.RemedyDateField
	Urgency                   = types.Urgency
	Project                   = types.Project
	ProjectSummary            = types.ProjectSummary
	User                      = types.User
	Session                   = types.Session
	SignupRequest             = types.SignupRequest
	LoginRequest              = types.LoginRequest
	AuthResponse              = types.AuthResponse
	StatesRequest             = types.StatesRequest
	RoleCustomersRequest      = types.RoleCustomersRequest
	SaveProjectContactRequest = types.SaveProjectContactRequest
	DeleteDocumentRequest     = types.DeleteDocumentRequest
	SaveStepRequest           = types.SaveStepRequest
	SaveStepResponse          = types.SaveStepResponse
	ContractTotals            = types.ContractTotals
)

// Constants re-exported from the types subpackage.
const (
	StepUpload      = types.StepUpload
	StepDetails     = types.StepDetails
	StepDates       = types.StepDates
	StepDescription = types.StepDescription
	StepContract    = types.StepContract
	StepContacts    = types.StepContacts
	StepDocuments   = types.StepDocuments
	StepDeadlines   = types.StepDeadlines
	StepTasks       = types.StepTasks
	StepSummary     = types.StepSummary
	StepInfoSheet   = types.StepInfoSheet
	FirstStep       = types.FirstStep
	LastStep        = types.LastStep

	UrgencySafe       = types.UrgencySafe
	UrgencySoon       = types.UrgencySoon
	UrgencyOverdue    = types.UrgencyOverdue
	SoonThresholdDays = types.SoonThresholdDays

	DraftKey           = types.DraftKey
	DateLayout         = types.DateLayout
	MaxUploadBytes     = types.MaxUploadBytes
	FirstFurnishingKey = types.FirstFurnishingKey
	LastFurnishingKey  = types.LastFurnishingKey
)

// Constructors and helpers re-exported from the types subpackage.
var (
	NewEntityID       = types.NewEntityID
	NewDate           = types.NewDate
	DateOf            = types.DateOf
	Today             = types.Today
	ParseDate         = types.ParseDate
	ParseMoney        = types.ParseMoney
	ParseStep         = types.ParseStep
	Steps             = types.Steps
	UrgencyFor        = types.UrgencyFor
	NameOf            = types.NameOf
	ProjectFromDraft  = types.ProjectFromDraft
	NewContractTotals = types.NewContractTotals
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Gateway           = interfaces.Gateway
	AuthGateway       = interfaces.AuthGateway
	CatalogGateway    = interfaces.CatalogGateway
	DeadlineGateway   = interfaces.DeadlineGateway
	ProjectGateway    = interfaces.ProjectGateway
	ContactGateway    = interfaces.ContactGateway
	DocumentGateway   = interfaces.DocumentGateway
	TaskGateway       = interfaces.TaskGateway
	UploadFile        = interfaces.UploadFile
	DraftStore        = interfaces.DraftStore
	SessionStore      = interfaces.SessionStore
	AuthService       = interfaces.AuthService
	DeadlineService   = interfaces.DeadlineService
	DocumentService   = interfaces.DocumentService
	SubmissionService = interfaces.SubmissionService
)
