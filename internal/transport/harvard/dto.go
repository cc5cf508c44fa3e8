package harvard

import (
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
)

// infoDTO mirrors the "info" paging envelope.
type infoDTO struct {
	TotalRecordsPerQuery int    `json:"totalrecordsperquery"`
	TotalRecords         int    `json:"totalrecords"`
	Pages                int    `json:"pages"`
	Page                 int    `json:"page"`
	Next                 string `json:"next"`
	Prev                 string `json:"prev"`
}

type optionDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type optionPageDTO struct {
	Info    infoDTO     `json:"info"`
	Records []optionDTO `json:"records"`
}

type personDTO struct {
	DisplayName string `json:"displayname"`
}

type imageDTO struct {
	BaseImageURL string `json:"baseimageurl"`
}

// objectDTO carries only the fields the feature panel renders.
type objectDTO struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Dated           string      `json:"dated"`
	PrimaryImageURL string      `json:"primaryimageurl"`
	Description     string      `json:"description"`
	Culture         string      `json:"culture"`
	Style           string      `json:"style"`
	Technique       string      `json:"technique"`
	Medium          string      `json:"medium"`
	Dimensions      string      `json:"dimensions"`
	People          []personDTO `json:"people"`
	Department      string      `json:"department"`
	Division        string      `json:"division"`
	Contact         string      `json:"contact"`
	CreditLine      string      `json:"creditline"`
	Images          []imageDTO  `json:"images"`
}

type objectPageDTO struct {
	Info    infoDTO     `json:"info"`
	Records []objectDTO `json:"records"`
}

func optionsFromDTO(records []optionDTO) option.List {
	list := make(option.List, len(records))
	for i, r := range records {
		list[i] = option.Option{ID: r.ID, Name: r.Name}
	}
	return list
}

func resultSetFromDTO(p *objectPageDTO) resultset.ResultSet {
	records := make([]object.Object, len(p.Records))
	for i := range p.Records {
		records[i] = objectFromDTO(&p.Records[i])
	}
	return resultset.ResultSet{
		Info: resultset.Info{
			TotalRecordsPerQuery: p.Info.TotalRecordsPerQuery,
			TotalRecords:         p.Info.TotalRecords,
			Pages:                p.Info.Pages,
			Page:                 p.Info.Page,
			Next:                 p.Info.Next,
			Prev:                 p.Info.Prev,
		},
		Records: records,
	}
}

func objectFromDTO(d *objectDTO) object.Object {
	o := object.Object{
		ID:              d.ID,
		Title:           d.Title,
		Dated:           d.Dated,
		PrimaryImageURL: d.PrimaryImageURL,
		Description:     d.Description,
		Culture:         d.Culture,
		Style:           d.Style,
		Technique:       d.Technique,
		Medium:          d.Medium,
		Dimensions:      d.Dimensions,
		Department:      d.Department,
		Division:        d.Division,
		Contact:         d.Contact,
		CreditLine:      d.CreditLine,
		Images:          make([]object.Image, len(d.Images)),
	}
	if d.People != nil {
		o.People = make([]object.Person, len(d.People))
		for i, p := range d.People {
			o.People[i] = object.Person{DisplayName: p.DisplayName}
		}
	}
	for i, img := range d.Images {
		o.Images[i] = object.Image{BaseImageURL: img.BaseImageURL}
	}
	return o
}
