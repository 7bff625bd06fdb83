package controllers

import (
	"net/http"

	"github.com/angelmondragon/store-service/api/responses"
	"github.com/angelmondragon/store-service/api/validators"
	"github.com/angelmondragon/store-service/internal/tags"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"github.com/angelmondragon/store-service/pkg/logger"
)

const tagIDParam = "tagId"

func tagServiceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "tag service unavailable")
}

// StoreTagList returns the tags registered under a store.
func StoreTagList(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		storeID, err := validators.ParsePathID(r, storeIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// StoreTagCreate registers a tag under a store.
func StoreTagCreate(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		storeID, err := validators.ParsePathID(r, storeIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tags.CreateTagInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tag, err := svc.Create(r.Context(), storeID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tag)
	}
}

func TagGet(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		id, err := validators.ParsePathID(r, tagIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tag, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tag)
	}
}

// TagDelete removes a tag that no item references.
func TagDelete(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		id, err := validators.ParsePathID(r, tagIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Tag deleted")
	}
}

func parseLinkIDs(r *http.Request) (itemID, tagID uint, err error) {
	if itemID, err = validators.ParsePathID(r, itemIDParam); err != nil {
		return 0, 0, err
	}
	if tagID, err = validators.ParsePathID(r, tagIDParam); err != nil {
		return 0, 0, err
	}
	return itemID, tagID, nil
}

// ItemTagLink attaches a tag to an item and returns the tag.
func ItemTagLink(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		itemID, tagID, err := parseLinkIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tag, err := svc.Link(r.Context(), itemID, tagID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tag)
	}
}

// ItemTagUnlink detaches a tag from an item. Responds 201 like the link route.
func ItemTagUnlink(svc tags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, tagServiceUnavailable())
			return
		}

		itemID, tagID, err := parseLinkIDs(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.Unlink(r.Context(), itemID, tagID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, res)
	}
}
