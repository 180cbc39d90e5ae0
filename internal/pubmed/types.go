package pubmed

import "encoding/xml"

// Wire types for the two E-utilities endpoints, trimmed to the elements
// the screening pipeline reads. Element names follow the PubMed DTD.

// esearchResult is the eSearchResult envelope returned by esearch.fcgi.
type esearchResult struct {
	XMLName  xml.Name `xml:"eSearchResult"`
	Count    int      `xml:"Count"`
	RetMax   int      `xml:"RetMax"`
	RetStart int      `xml:"RetStart"`
	IDList   struct {
		IDs []string `xml:"Id"`
	} `xml:"IdList"`
	ErrorList *esearchErrorList `xml:"ErrorList"`
}

// esearchErrorList carries query-level diagnostics. PhraseNotFound means
// the term had no index entries, which is a zero-hit result, not a failure.
type esearchErrorList struct {
	PhraseNotFound []string `xml:"PhraseNotFound"`
	FieldNotFound  []string `xml:"FieldNotFound"`
}

// articleSet is the PubmedArticleSet envelope returned by efetch.fcgi.
type articleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
	PubmedData      pubmedData      `xml:"PubmedData"`
}

type medlineCitation struct {
	PMID    string  `xml:"PMID"`
	Article article `xml:"Article"`
}

type article struct {
	Journal      journal       `xml:"Journal"`
	ArticleTitle string        `xml:"ArticleTitle"`
	ELocationID  []eLocationID `xml:"ELocationID"`
	AuthorList   *authorList   `xml:"AuthorList"`
	ArticleDate  []articleDate `xml:"ArticleDate"`
}

type journal struct {
	Title        string       `xml:"Title"`
	JournalIssue journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

// pubDate is either structured (Year/Month/Day, sometimes Season) or a
// free-form MedlineDate such as "2020 Jan-Feb".
type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	Season      string `xml:"Season"`
	MedlineDate string `xml:"MedlineDate"`
}

type eLocationID struct {
	EIdType string `xml:"EIdType,attr"`
	ValidYN string `xml:"ValidYN,attr"`
	Value   string `xml:",chardata"`
}

type authorList struct {
	Authors []author `xml:"Author"`
}

type author struct {
	ValidYN         string            `xml:"ValidYN,attr"`
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	Initials        string            `xml:"Initials"`
	CollectiveName  string            `xml:"CollectiveName"`
	AffiliationInfo []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}

// articleDate is the electronic publication date, always numeric.
type articleDate struct {
	DateType string `xml:"DateType,attr"`
	Year     string `xml:"Year"`
	Month    string `xml:"Month"`
	Day      string `xml:"Day"`
}

type pubmedData struct {
	ArticleIDList articleIDList `xml:"ArticleIdList"`
}

type articleIDList struct {
	IDs []articleID `xml:"ArticleId"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}
