package reference

// OrdinaryVar is a plain string CSL variable.
type OrdinaryVar string

// The ordinary variable catalog, from the CSL 1.0.1 appendix plus the
// CSL-M additions that the feature set can enable.
const (
	VarAbstract             OrdinaryVar = "abstract"
	VarAnnote               OrdinaryVar = "annote"
	VarArchive              OrdinaryVar = "archive"
	VarArchiveLocation      OrdinaryVar = "archive_location"
	VarArchivePlace         OrdinaryVar = "archive-place"
	VarAuthority            OrdinaryVar = "authority"
	VarCallNumber           OrdinaryVar = "call-number"
	VarCitationLabel        OrdinaryVar = "citation-label"
	VarCollectionTitle      OrdinaryVar = "collection-title"
	VarContainerTitle       OrdinaryVar = "container-title"
	VarContainerTitleShort  OrdinaryVar = "container-title-short"
	VarDimensions           OrdinaryVar = "dimensions"
	VarDOI                  OrdinaryVar = "DOI"
	VarEvent                OrdinaryVar = "event"
	VarEventPlace           OrdinaryVar = "event-place"
	VarGenre                OrdinaryVar = "genre"
	VarISBN                 OrdinaryVar = "ISBN"
	VarISSN                 OrdinaryVar = "ISSN"
	VarJurisdiction         OrdinaryVar = "jurisdiction"
	VarKeyword              OrdinaryVar = "keyword"
	VarLanguage             OrdinaryVar = "language"
	VarLocatorExtra         OrdinaryVar = "locator-extra"
	VarMedium               OrdinaryVar = "medium"
	VarNote                 OrdinaryVar = "note"
	VarOriginalPublisher    OrdinaryVar = "original-publisher"
	VarOriginalPublisherPl  OrdinaryVar = "original-publisher-place"
	VarOriginalTitle        OrdinaryVar = "original-title"
	VarPMCID                OrdinaryVar = "PMCID"
	VarPMID                 OrdinaryVar = "PMID"
	VarPublisher            OrdinaryVar = "publisher"
	VarPublisherPlace       OrdinaryVar = "publisher-place"
	VarReferences           OrdinaryVar = "references"
	VarReviewedTitle        OrdinaryVar = "reviewed-title"
	VarScale                OrdinaryVar = "scale"
	VarSection              OrdinaryVar = "section"
	VarSource               OrdinaryVar = "source"
	VarStatus               OrdinaryVar = "status"
	VarTitle                OrdinaryVar = "title"
	VarTitleShort           OrdinaryVar = "title-short"
	VarURL                  OrdinaryVar = "URL"
	VarVersion              OrdinaryVar = "version"
	VarYearSuffix           OrdinaryVar = "year-suffix"
	VarHereinafter          OrdinaryVar = "hereinafter"
)

// NumberVar is a numeric CSL variable.
type NumberVar string

const (
	NumVarChapterNumber      NumberVar = "chapter-number"
	NumVarCitationNumber     NumberVar = "citation-number"
	NumVarCollectionNumber   NumberVar = "collection-number"
	NumVarEdition            NumberVar = "edition"
	NumVarFirstRefNoteNumber NumberVar = "first-reference-note-number"
	NumVarIssue              NumberVar = "issue"
	NumVarLocator            NumberVar = "locator"
	NumVarNumber             NumberVar = "number"
	NumVarNumberOfPages      NumberVar = "number-of-pages"
	NumVarNumberOfVolumes    NumberVar = "number-of-volumes"
	NumVarPage               NumberVar = "page"
	NumVarPageFirst          NumberVar = "page-first"
	NumVarVolume             NumberVar = "volume"
)

// IsQuantity reports whether the variable counts things, which changes how
// label plurality is decided ("3 volumes" but "volume 3").
func (v NumberVar) IsQuantity() bool {
	return v == NumVarNumberOfPages || v == NumVarNumberOfVolumes
}

// NameVar is a name-list CSL variable.
type NameVar string

const (
	NameVarAuthor              NameVar = "author"
	NameVarCollectionEditor    NameVar = "collection-editor"
	NameVarComposer            NameVar = "composer"
	NameVarContainerAuthor     NameVar = "container-author"
	NameVarDirector            NameVar = "director"
	NameVarEditor              NameVar = "editor"
	NameVarEditorialDirector   NameVar = "editorial-director"
	NameVarIllustrator         NameVar = "illustrator"
	NameVarInterviewer         NameVar = "interviewer"
	NameVarOriginalAuthor      NameVar = "original-author"
	NameVarRecipient           NameVar = "recipient"
	NameVarReviewedAuthor      NameVar = "reviewed-author"
	NameVarTranslator          NameVar = "translator"
)

// DateVar is a date CSL variable.
type DateVar string

const (
	DateVarAccessed      DateVar = "accessed"
	DateVarContainer     DateVar = "container"
	DateVarEventDate     DateVar = "event-date"
	DateVarIssued        DateVar = "issued"
	DateVarLocatorDate   DateVar = "locator-date"
	DateVarOriginalDate  DateVar = "original-date"
	DateVarSubmitted     DateVar = "submitted"
)

var ordinaryVars = makeSet(
	VarAbstract, VarAnnote, VarArchive, VarArchiveLocation, VarArchivePlace,
	VarAuthority, VarCallNumber, VarCitationLabel, VarCollectionTitle,
	VarContainerTitle, VarContainerTitleShort, VarDimensions, VarDOI,
	VarEvent, VarEventPlace, VarGenre, VarISBN, VarISSN, VarJurisdiction,
	VarKeyword, VarLanguage, VarLocatorExtra, VarMedium, VarNote,
	VarOriginalPublisher, VarOriginalPublisherPl, VarOriginalTitle,
	VarPMCID, VarPMID, VarPublisher, VarPublisherPlace, VarReferences,
	VarReviewedTitle, VarScale, VarSection, VarSource, VarStatus, VarTitle,
	VarTitleShort, VarURL, VarVersion, VarYearSuffix, VarHereinafter,
)

var numberVars = makeSet(
	NumVarChapterNumber, NumVarCitationNumber, NumVarCollectionNumber,
	NumVarEdition, NumVarFirstRefNoteNumber, NumVarIssue, NumVarLocator,
	NumVarNumber, NumVarNumberOfPages, NumVarNumberOfVolumes, NumVarPage,
	NumVarPageFirst, NumVarVolume,
)

var nameVars = makeSet(
	NameVarAuthor, NameVarCollectionEditor, NameVarComposer,
	NameVarContainerAuthor, NameVarDirector, NameVarEditor,
	NameVarEditorialDirector, NameVarIllustrator, NameVarInterviewer,
	NameVarOriginalAuthor, NameVarRecipient, NameVarReviewedAuthor,
	NameVarTranslator,
)

var dateVars = makeSet(
	DateVarAccessed, DateVarContainer, DateVarEventDate, DateVarIssued,
	DateVarLocatorDate, DateVarOriginalDate, DateVarSubmitted,
)

func makeSet[T comparable](vals ...T) map[T]bool {
	m := make(map[T]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// ParseOrdinaryVar reports whether name is a known ordinary variable.
func ParseOrdinaryVar(name string) (OrdinaryVar, bool) {
	v := OrdinaryVar(name)
	return v, ordinaryVars[v]
}

// ParseNumberVar reports whether name is a known number variable.
func ParseNumberVar(name string) (NumberVar, bool) {
	v := NumberVar(name)
	return v, numberVars[v]
}

// ParseNameVar reports whether name is a known name variable.
func ParseNameVar(name string) (NameVar, bool) {
	v := NameVar(name)
	return v, nameVars[v]
}

// ParseDateVar reports whether name is a known date variable.
func ParseDateVar(name string) (DateVar, bool) {
	v := DateVar(name)
	return v, dateVars[v]
}
