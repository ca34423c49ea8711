package router

import (
	"net/http"

	"github.com/agneltms/procurement-service/internal/handlers"
)

func InitRoutes(
	tenderHandler *handlers.TenderHandler,
	proposalHandler *handlers.ProposalHandler,
	collaborationHandler *handlers.CollaborationHandler,
	evaluationHandler *handlers.EvaluationHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/tenders/new", tenderHandler.CreateTender)
	mux.HandleFunc("GET /api/tenders", tenderHandler.GetTenders)
	mux.HandleFunc("GET /api/tenders/{tenderId}", tenderHandler.GetTender)
	mux.HandleFunc("POST /api/tenders/{tenderId}/publish", tenderHandler.PublishTender)
	mux.HandleFunc("POST /api/tenders/{tenderId}/sections", tenderHandler.AddSection)
	mux.HandleFunc("GET /api/tenders/{tenderId}/sections", tenderHandler.GetSections)
	mux.HandleFunc("PATCH /api/sections/{sectionId}", tenderHandler.EditSection)
	mux.HandleFunc("DELETE /api/sections/{sectionId}", tenderHandler.DeleteSection)

	mux.HandleFunc("POST /api/tenders/{tenderId}/proposals/new", proposalHandler.CreateProposal)
	mux.HandleFunc("GET /api/proposals/{proposalId}", proposalHandler.GetProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/finalize", proposalHandler.FinalizeProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/publish", proposalHandler.PublishProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/revert", proposalHandler.RevertProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/submit", proposalHandler.SubmitProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/review", proposalHandler.StartReview)
	mux.HandleFunc("POST /api/proposals/{proposalId}/decision", proposalHandler.DecideProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/versions/new", proposalHandler.CreateNewVersion)
	mux.HandleFunc("GET /api/tenders/{tenderId}/proposals/history", proposalHandler.GetVersionHistory)
	mux.HandleFunc("GET /api/tenders/{tenderId}/proposals/versions/{version}", proposalHandler.GetVersionSnapshot)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/sections/{sectionId}/response", proposalHandler.UpdateSectionResponse)
	mux.HandleFunc("GET /api/proposals/{proposalId}/responses", proposalHandler.GetSectionResponses)

	mux.HandleFunc("POST /api/proposals/{proposalId}/sections/{sectionId}/collaborators", collaborationHandler.AssignCollaborator)
	mux.HandleFunc("DELETE /api/proposals/{proposalId}/sections/{sectionId}/collaborators", collaborationHandler.RemoveCollaborator)
	mux.HandleFunc("POST /api/uploaded-tenders/{uploadedTenderId}/collaborators", collaborationHandler.AssignUploadedTenderCollaborator)
	mux.HandleFunc("GET /api/proposals/{proposalId}/sections/{sectionId}/content", collaborationHandler.GetSectionContent)
	mux.HandleFunc("PUT /api/proposals/{proposalId}/sections/{sectionId}/content", collaborationHandler.UpdateSectionContent)
	mux.HandleFunc("POST /api/proposals/{proposalId}/sections/{sectionId}/comments", collaborationHandler.AddComment)
	mux.HandleFunc("GET /api/proposals/{proposalId}/sections/{sectionId}/comments", collaborationHandler.ListComments)
	mux.HandleFunc("POST /api/comments/{commentId}/resolve", collaborationHandler.ResolveComment)
	mux.HandleFunc("GET /api/assignments/my", collaborationHandler.ListAssignments)

	mux.HandleFunc("POST /api/tenders/{tenderId}/evaluation/initialize", evaluationHandler.InitializeEvaluation)
	mux.HandleFunc("PATCH /api/proposals/{proposalId}/evaluation", evaluationHandler.UpdateBidEvaluation)
	mux.HandleFunc("POST /api/tenders/{tenderId}/evaluation/complete", evaluationHandler.CompleteEvaluation)
	mux.HandleFunc("GET /api/tenders/{tenderId}/evaluation/bids", evaluationHandler.GetBids)
	mux.HandleFunc("GET /api/tenders/{tenderId}/evaluation", evaluationHandler.GetEvaluationDetails)

	return mux
}
