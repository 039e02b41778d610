package metadata

import "strconv"

// Document is the ERC-721 token metadata served to marketplaces
type Document struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Responder struct {
	namePrefix   string
	description  string
	imageBaseURL string
}

func NewResponder(namePrefix, description, imageBaseURL string) *Responder {
	return &Responder{
		namePrefix:   namePrefix,
		description:  description,
		imageBaseURL: imageBaseURL,
	}
}

// For returns the metadata of the token. Every token id has a document, minted or not.
func (r *Responder) For(tokenID uint64) Document {
	id := strconv.FormatUint(tokenID, 10)
	return Document{
		Name:        r.namePrefix + id,
		Description: r.description,
		Image:       r.imageBaseURL + id + ".svg",
	}
}
